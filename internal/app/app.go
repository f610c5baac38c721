package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/inkwellcms/inkwell/internal/config"
	"github.com/inkwellcms/inkwell/internal/db"
	"github.com/inkwellcms/inkwell/internal/markdown"
	"github.com/inkwellcms/inkwell/internal/repository"
	"github.com/inkwellcms/inkwell/internal/service"
)

type App struct {
	Cfg                 *config.Config
	DB                  *sqlx.DB
	AuthService         *service.AuthService
	VerificationService *service.VerificationService
	UserService         *service.UserService
	PageService         *service.PageService
	EmailService        *service.EmailService
	Renderer            *markdown.Renderer
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	tokenRepository := repository.NewTokenRepository(database)
	pageRepository := repository.NewPageRepository(database)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	verificationService := service.NewVerificationService(
		userRepository,
		tokenRepository,
		emailService,
		cfg.TokenEmailVerifyExpiry,
	)
	authService := service.NewAuthService(
		userRepository,
		verificationService,
		emailService,
		cfg.AdminEmails,
		cfg.IsProduction(),
	)
	userService := service.NewUserService(userRepository)
	pageService := service.NewPageService(pageRepository)

	return &App{
		Cfg:                 cfg,
		DB:                  database,
		AuthService:         authService,
		VerificationService: verificationService,
		UserService:         userService,
		PageService:         pageService,
		EmailService:        emailService,
		Renderer:            markdown.NewRenderer(),
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
