package navigation

// NavigationService resolves the navigable surface for an authenticated
// session. All methods are pure: role and attendance type come in as
// explicit arguments, never read from ambient state.
type NavigationService interface {
	// ResolveRoutes returns the route list for a role code. Unknown codes
	// yield an empty list and ErrUnknownRole.
	ResolveRoutes(role int) ([]RouteDescriptor, error)

	// ResolveLandingPath returns the post-login redirect target for a role.
	// For admins the attendance type selects between the location tracker
	// and selfie check-in screens.
	ResolveLandingPath(role int, attendanceType string) (string, error)

	// BuildBreadcrumbs derives the breadcrumb trail for a URL path against
	// a resolved route list.
	BuildBreadcrumbs(currentPath string, routes []RouteDescriptor) []BreadcrumbEntry
}
