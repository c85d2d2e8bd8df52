package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/opsuite/opsuite-backend-go/internal/config"
	appHTTP "github.com/opsuite/opsuite-backend-go/internal/handler/http"
	"github.com/opsuite/opsuite-backend-go/internal/pkg/database"
	"github.com/opsuite/opsuite-backend-go/internal/pkg/jwt"
	"github.com/opsuite/opsuite-backend-go/internal/pkg/oauth"
	"github.com/opsuite/opsuite-backend-go/internal/pkg/storage"
	"github.com/opsuite/opsuite-backend-go/internal/repository/postgresql"
	authService "github.com/opsuite/opsuite-backend-go/internal/service/auth"
	companyService "github.com/opsuite/opsuite-backend-go/internal/service/company"
	"github.com/opsuite/opsuite-backend-go/internal/service/file"
	navigationService "github.com/opsuite/opsuite-backend-go/internal/service/navigation"
	trackerService "github.com/opsuite/opsuite-backend-go/internal/service/tracker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	trackerRepo := postgresql.NewTrackerRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleSvc := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	fileSvc := file.NewFileService(fileStorage)
	navigationSvc := navigationService.NewNavigationService()
	authSvc := authService.NewAuthService(db, userRepo, companyRepo, jwtSvc, jwtRepo, navigationSvc)
	companySvc := companyService.NewCompanyService(companyRepo, fileSvc)
	trackerSvc := trackerService.NewTrackerService(trackerRepo, companyRepo, fileSvc, cfg.Tracker)

	authHandler := appHTTP.NewAuthHandler(jwtSvc, authSvc, googleSvc, cfg.App.FrontendURL)
	navigationHandler := appHTTP.NewNavigationHandler(navigationSvc)
	trackerHandler := appHTTP.NewTrackerHandler(trackerSvc)
	companyHandler := appHTTP.NewCompanyHandler(companySvc)

	router := appHTTP.NewRouter(
		jwtSvc,
		authHandler,
		navigationHandler,
		trackerHandler,
		companyHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
