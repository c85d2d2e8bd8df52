package navigation

import (
	"testing"

	"github.com/opsuite/opsuite-backend-go/internal/domain/navigation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRoutes_KnownRoles(t *testing.T) {
	svc := NewNavigationService()

	for _, role := range []int{0, 1, 2, 3, 4, 5, 10} {
		routes, err := svc.ResolveRoutes(role)
		require.NoError(t, err, "role %d", role)
		require.NotEmpty(t, routes, "role %d", role)

		// Every list starts at the role dashboard.
		assert.Equal(t, "/", routes[0].Path, "role %d", role)
		assert.True(t, routes[0].Exact, "role %d root must be exact", role)

		// Stable: resolving twice yields the identical list.
		again, err := svc.ResolveRoutes(role)
		require.NoError(t, err)
		assert.Equal(t, routes, again, "role %d route list must be stable", role)
	}
}

func TestResolveRoutes_UnknownRole(t *testing.T) {
	svc := NewNavigationService()

	for _, role := range []int{-1, 6, 7, 11, 99} {
		routes, err := svc.ResolveRoutes(role)
		assert.ErrorIs(t, err, navigation.ErrUnknownRole, "role %d", role)
		assert.Empty(t, routes, "unknown role %d must get no routes", role)
	}
}

func TestResolveRoutes_ReturnsCopy(t *testing.T) {
	svc := NewNavigationService()

	routes, err := svc.ResolveRoutes(navigation.RoleManager)
	require.NoError(t, err)
	routes[0].Name = "mutated"

	fresh, err := svc.ResolveRoutes(navigation.RoleManager)
	require.NoError(t, err)
	assert.Equal(t, "Home", fresh[0].Name)
}

func TestResolveRoutes_ManagerCarriesSecondCreditReport(t *testing.T) {
	svc := NewNavigationService()

	managerRoutes, err := svc.ResolveRoutes(navigation.RoleManager)
	require.NoError(t, err)

	var creditPaths []string
	for _, r := range managerRoutes {
		if r.Name == "Credit Report" {
			creditPaths = append(creditPaths, r.Path)
		}
	}
	assert.Equal(t, []string{"/creditreport", "/creditreport2"}, creditPaths)

	adminRoutes, err := svc.ResolveRoutes(navigation.RoleAdmin)
	require.NoError(t, err)
	for _, r := range adminRoutes {
		assert.NotEqual(t, "/creditreport2", r.Path, "creditreport2 is manager-only")
	}
}

func TestResolveLandingPath_Admin(t *testing.T) {
	svc := NewNavigationService()

	cases := []struct {
		attendanceType string
		want           string
	}{
		{"face_attendance", "/selfie-tracker"},
		{"both", "/selfie-tracker"},
		{"location", "/tracker"},
		{"", "/tracker"},
		{"bogus", "/tracker"},
	}
	for _, c := range cases {
		got, err := svc.ResolveLandingPath(navigation.RoleAdmin, c.attendanceType)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "attendance_type=%q", c.attendanceType)
	}
}

func TestResolveLandingPath_OtherRoles(t *testing.T) {
	svc := NewNavigationService()

	cases := map[int]string{
		navigation.RoleSuperAdmin:      "/",
		navigation.RoleManager:         "/",
		navigation.RoleProductEngineer: "/products",
		navigation.RoleDelivery:        "/challans",
		navigation.RoleLabTechnician:   "/lab-reports",
		navigation.RoleLimitedEmployee: "/tracker",
	}
	for role, want := range cases {
		got, err := svc.ResolveLandingPath(role, "")
		require.NoError(t, err, "role %d", role)
		assert.Equal(t, want, got, "role %d", role)

		// Attendance type must not influence non-admin roles.
		got, err = svc.ResolveLandingPath(role, "face_attendance")
		require.NoError(t, err)
		assert.Equal(t, want, got, "role %d", role)
	}

	_, err := svc.ResolveLandingPath(42, "")
	assert.ErrorIs(t, err, navigation.ErrUnknownRole)
}

func TestBuildBreadcrumbs(t *testing.T) {
	svc := NewNavigationService()
	routes := []navigation.RouteDescriptor{
		{Path: "/", Name: "Home", Exact: true},
		{Path: "/employees", Name: "Employees"},
		{Path: "/employees/:id", Name: "Employee Details"},
	}

	crumbs := svc.BuildBreadcrumbs("/employees/42", routes)
	require.Len(t, crumbs, 3)

	assert.Equal(t, navigation.BreadcrumbEntry{Pathname: "/", Name: "Home"}, crumbs[0])
	assert.Equal(t, navigation.BreadcrumbEntry{Pathname: "/employees", Name: "Employees"}, crumbs[1])
	assert.Equal(t, navigation.BreadcrumbEntry{
		Pathname: "/employees/42",
		Name:     "Employee Details",
		Active:   true,
	}, crumbs[2])
}

func TestBuildBreadcrumbs_SkipsUnknownPrefixes(t *testing.T) {
	svc := NewNavigationService()
	routes := []navigation.RouteDescriptor{
		{Path: "/", Name: "Home", Exact: true},
		{Path: "/employees/attendance/:id", Name: "Employee Details"},
	}

	// "/employees" and "/employees/attendance" have no routes of their own
	// and are silently skipped.
	crumbs := svc.BuildBreadcrumbs("/employees/attendance/42", routes)
	require.Len(t, crumbs, 2)
	assert.Equal(t, "/", crumbs[0].Pathname)
	assert.False(t, crumbs[0].Active)
	assert.Equal(t, "/employees/attendance/42", crumbs[1].Pathname)
	assert.True(t, crumbs[1].Active)
}

func TestBuildBreadcrumbs_RootOnly(t *testing.T) {
	svc := NewNavigationService()
	routes := []navigation.RouteDescriptor{
		{Path: "/", Name: "Home", Exact: true},
	}

	crumbs := svc.BuildBreadcrumbs("/", routes)
	require.Len(t, crumbs, 1)
	assert.True(t, crumbs[0].Active)

	crumbs = svc.BuildBreadcrumbs("/nowhere", routes)
	require.Len(t, crumbs, 1)
	assert.Equal(t, "/", crumbs[0].Pathname)
	assert.False(t, crumbs[0].Active, "root is not active when a deeper path is open")
}
