package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/opsuite/opsuite-backend-go/internal/domain/user"
	"github.com/opsuite/opsuite-backend-go/internal/handler/http/middleware"
	"github.com/opsuite/opsuite-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	navigationHandler NavigationHandler,
	trackerHandler TrackerHandler,
	companyHandler CompanyHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "opsuite"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", authHandler.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", authHandler.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", authHandler.LoginWithGoogle)
				})
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService))

			r.Route("/navigation", func(r chi.Router) {
				r.Get("/routes", navigationHandler.Routes)
				r.Get("/landing", navigationHandler.Landing)
				r.Get("/breadcrumbs", navigationHandler.Breadcrumbs)
			})

			r.Route("/employee-tracker", func(r chi.Router) {
				r.Get("/status", trackerHandler.Status)
				r.Post("/", trackerHandler.CheckIn)
				r.Put("/{id}", trackerHandler.CheckOut)
				r.Get("/my", trackerHandler.GetMyTrackers)

				// Roles allowed to read other employees' records
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(user.RoleSuperAdmin, user.RoleAdmin, user.RoleManager))
					r.Get("/", trackerHandler.List)
				})
			})

			r.Route("/company", func(r chi.Router) {
				r.Get("/", companyHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(user.RoleSuperAdmin, user.RoleAdmin))
					r.Put("/location", companyHandler.UpdateLocationConfig)
					r.Post("/logo", companyHandler.UploadLogo)
				})
			})
		})
	})
	return r
}
