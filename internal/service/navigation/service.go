package navigation

import (
	"log/slog"
	"strings"

	"github.com/opsuite/opsuite-backend-go/internal/domain/navigation"
)

type NavigationServiceImpl struct{}

func NewNavigationService() navigation.NavigationService {
	return &NavigationServiceImpl{}
}

// ResolveRoutes implements navigation.NavigationService.
func (s *NavigationServiceImpl) ResolveRoutes(role int) ([]navigation.RouteDescriptor, error) {
	routes, ok := navigation.RoleRoutes[role]
	if !ok {
		slog.Error("route resolution for unknown role code", "role", role)
		return []navigation.RouteDescriptor{}, navigation.ErrUnknownRole
	}

	// Hand out a copy so callers cannot mutate the session-wide table.
	out := make([]navigation.RouteDescriptor, len(routes))
	copy(out, routes)
	return out, nil
}

// ResolveLandingPath implements navigation.NavigationService.
func (s *NavigationServiceImpl) ResolveLandingPath(role int, attendanceType string) (string, error) {
	if role == navigation.RoleAdmin {
		switch attendanceType {
		case navigation.AttendanceTypeFace, navigation.AttendanceTypeBoth:
			return navigation.SelfieTrackerPath, nil
		case navigation.AttendanceTypeLocation:
			return navigation.LocationTrackerPath, nil
		default:
			// Unset or unrecognized attendance type falls back to the
			// location tracker.
			return navigation.LocationTrackerPath, nil
		}
	}

	landing, ok := navigation.RoleLandings[role]
	if !ok {
		slog.Error("landing resolution for unknown role code", "role", role)
		return "", navigation.ErrUnknownRole
	}
	return landing, nil
}

// BuildBreadcrumbs implements navigation.NavigationService.
func (s *NavigationServiceImpl) BuildBreadcrumbs(currentPath string, routes []navigation.RouteDescriptor) []navigation.BreadcrumbEntry {
	segments := strings.Split(strings.TrimSuffix(currentPath, "/"), "/")

	entries := []navigation.BreadcrumbEntry{}
	prefix := ""
	for i, segment := range segments {
		if i == 0 && segment == "" {
			prefix = ""
		} else {
			prefix = prefix + "/" + segment
		}

		lookup := prefix
		if lookup == "" {
			lookup = "/"
		}

		route, ok := matchRoute(lookup, routes)
		if !ok {
			// Prefixes without a route are skipped, not errors.
			continue
		}

		entries = append(entries, navigation.BreadcrumbEntry{
			Pathname: lookup,
			Name:     route.Name,
			Active:   i == len(segments)-1,
		})
	}

	return entries
}

// matchRoute finds the first route whose path matches the given concrete
// path. Parameter segments (":id") match any single literal segment.
func matchRoute(path string, routes []navigation.RouteDescriptor) (navigation.RouteDescriptor, bool) {
	for _, route := range routes {
		if matchPath(route.Path, path) {
			return route, true
		}
	}
	return navigation.RouteDescriptor{}, false
}

func matchPath(pattern, path string) bool {
	if pattern == path {
		return true
	}

	patternSegs := strings.Split(pattern, "/")
	pathSegs := strings.Split(path, "/")
	if len(patternSegs) != len(pathSegs) {
		return false
	}

	for i := range patternSegs {
		if strings.HasPrefix(patternSegs[i], ":") && pathSegs[i] != "" {
			continue
		}
		if patternSegs[i] != pathSegs[i] {
			return false
		}
	}
	return true
}
