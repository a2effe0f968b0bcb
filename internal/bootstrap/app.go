package bootstrap

import (
	"context"
	"database/sql"
	"log"

	googleauth "decision-backend/internal/auth"
	"decision-backend/internal/decisions"
	"decision-backend/internal/queue"
	"decision-backend/internal/recommendations"
	"decision-backend/internal/settings"
	"decision-backend/internal/shared/config"
	"decision-backend/internal/shared/storage/db"
	"decision-backend/internal/users"
)

// App holds the wired dependencies shared by the API server and the notifier.
type App struct {
	Config config.Config
	DB     *sql.DB
	Queue  queue.Client

	DecisionsService       *decisions.Service
	SettingsService        *settings.Service
	RecommendationsService *recommendations.Service
	UsersService           *users.Service
	GoogleAuth             *googleauth.GoogleService

	DecisionsHandler       *decisions.Handler
	SettingsHandler        *settings.Handler
	RecommendationsHandler *recommendations.Handler
	UsersHandler           *users.Handler
}

// Build wires repositories, services and handlers. Postgres is used when
// DATABASE_URL connects; otherwise everything falls back to memory repos,
// which is the expected mode for local development.
func Build(cfg config.Config) (*App, error) {
	app := &App{Config: cfg}

	if cfg.DatabaseURL != "" {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err := db.Connect(context.Background(), cfg.DatabaseURL, opts)
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else if err := db.RunMigrations(context.Background(), sqlDB); err != nil {
			log.Printf("failed to run migrations, falling back to memory: %v", err)
			sqlDB.Close()
		} else {
			app.DB = sqlDB
		}
	}

	var decisionRepo decisions.Repo
	var recommendationRepo recommendations.Repo
	var userRepo users.Repo
	var settingsSvc *settings.Service
	if app.DB != nil {
		decisionRepo = &decisions.PGRepo{DB: app.DB}
		recommendationRepo = recommendations.NewPGRepo(app.DB)
		userRepo = &users.PGRepo{DB: app.DB}
		settingsSvc = settings.NewPostgresService(settings.NewPGStore(app.DB))
	} else {
		decisionRepo = decisions.NewMemoryRepo()
		recommendationRepo = recommendations.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
		settingsSvc = settings.NewService()
	}

	if cfg.QueueURL != "" {
		q, err := queue.NewSQSClient(context.Background())
		if err != nil {
			log.Printf("failed to build queue client, notifications disabled: %v", err)
		} else {
			app.Queue = q
		}
	}

	decisionSvc := &decisions.Service{Repo: decisionRepo}
	userSvc := users.NewService(userRepo)
	recommendationSvc := recommendations.NewService(recommendationRepo, decisionSvc, settingsSvc, app.Queue)

	app.DecisionsService = decisionSvc
	app.SettingsService = settingsSvc
	app.RecommendationsService = recommendationSvc
	app.UsersService = userSvc
	app.GoogleAuth = googleauth.NewGoogleService(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
		cfg.UIRedirectURL,
		userSvc,
	)

	app.DecisionsHandler = decisions.NewHandler(decisionSvc)
	app.SettingsHandler = settings.NewHandler(settingsSvc)
	app.RecommendationsHandler = recommendations.NewHandler(recommendationSvc)
	app.UsersHandler = users.NewHandler(userSvc)

	return app, nil
}

// Close releases resources held by the app.
func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}
