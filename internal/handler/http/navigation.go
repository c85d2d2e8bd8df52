package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/opsuite/opsuite-backend-go/internal/domain/auth"
	"github.com/opsuite/opsuite-backend-go/internal/domain/navigation"
	"github.com/opsuite/opsuite-backend-go/internal/domain/user"
	"github.com/opsuite/opsuite-backend-go/internal/handler/http/response"
	"github.com/opsuite/opsuite-backend-go/internal/pkg/jwt"
)

type NavigationHandler interface {
	Routes(w http.ResponseWriter, r *http.Request)
	Landing(w http.ResponseWriter, r *http.Request)
	Breadcrumbs(w http.ResponseWriter, r *http.Request)
}

type navigationHandlerImpl struct {
	navigationService navigation.NavigationService
}

func NewNavigationHandler(navigationService navigation.NavigationService) NavigationHandler {
	return &navigationHandlerImpl{
		navigationService: navigationService,
	}
}

// sessionRole pulls the role and attendance type out of the verified token.
// The service itself is pure, claims only cross here.
func sessionRole(r *http.Request) (user.Role, string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return 0, "", auth.ErrInvalidToken
	}

	role, ok := jwt.RoleFromClaims(claims)
	if !ok {
		return 0, "", user.ErrRoleAccessRequired
	}

	return role, jwt.AttendanceTypeFromClaims(claims), nil
}

// Routes implements NavigationHandler.
func (h *navigationHandlerImpl) Routes(w http.ResponseWriter, r *http.Request) {
	role, _, err := sessionRole(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	routes, err := h.navigationService.ResolveRoutes(int(role))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"routes": routes,
	})
}

// Landing implements NavigationHandler.
func (h *navigationHandlerImpl) Landing(w http.ResponseWriter, r *http.Request) {
	role, attendanceType, err := sessionRole(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	landing, err := h.navigationService.ResolveLandingPath(int(role), attendanceType)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"landing": landing,
	})
}

// Breadcrumbs implements NavigationHandler.
func (h *navigationHandlerImpl) Breadcrumbs(w http.ResponseWriter, r *http.Request) {
	role, _, err := sessionRole(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	path := r.URL.Query().Get("path")
	if path == "" {
		response.BadRequest(w, "Query parameter 'path' is required", nil)
		return
	}

	routes, err := h.navigationService.ResolveRoutes(int(role))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	breadcrumbs := h.navigationService.BuildBreadcrumbs(path, routes)

	response.Success(w, map[string]interface{}{
		"breadcrumbs": breadcrumbs,
	})
}
