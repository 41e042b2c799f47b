package app

import (
	"context"

	"recommai/config"
	"recommai/internal/controllers"
	"recommai/internal/database"
	"recommai/internal/handlers/middleware"
	"recommai/internal/jobs"
	"recommai/internal/repositories"
	"recommai/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	Database    database.DB
	Middleware  middleware.Middleware
	Config      config.Config
	Services    services.Service
	Repos       repositories.Repository
	Controllers controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	repos := repositories.New(db)

	appServices, err := services.New(db, config)
	if err != nil {
		return &App{}, log.Err("failed to create services", err)
	}

	appControllers := controllers.New(appServices, repos, config, db)
	appMiddleware := middleware.New(db, config, repos, appServices)

	// Register jobs with scheduler if enabled
	if config.SchedulerEnabled {
		referenceStatsJob := jobs.NewReferenceStatsJob(repos, db.Cache.General, services.Daily)
		if err := appServices.Scheduler.AddJob(referenceStatsJob); err != nil {
			return &App{}, log.Err("failed to register reference stats job", err)
		}

		if err := appServices.Scheduler.Start(context.Background()); err != nil {
			return &App{}, log.Err("failed to start scheduler", err)
		}
		log.Info("Registered reference stats job with scheduler")
	}

	app := &App{
		Database:    db,
		Config:      config,
		Middleware:  appMiddleware,
		Services:    appServices,
		Repos:       repos,
		Controllers: appControllers,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Services.Session,
		a.Services.Scheduler,
		a.Repos.User,
		a.Repos.Media,
		a.Repos.Recommendation,
		a.Repos.SearchHistory,
		a.Controllers.Auth,
		a.Controllers.Search,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.Services.Scheduler != nil {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
