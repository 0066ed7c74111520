package app

import (
	"holdings/database"
	"holdings/services"
	"holdings/validator"
	"log/slog"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Positions *services.PositionService
	Users     *services.UserService
	Todos     services.TodoRepository
	Validator *validator.Validator
	Logger    *slog.Logger
}

// New creates a new App instance with all dependencies
func New(repo *database.Repository, logger *slog.Logger) *App {
	return &App{
		Positions: services.NewPositionService(repo),
		Users:     services.NewUserService(repo),
		Todos:     repo,
		Validator: validator.New(),
		Logger:    logger,
	}
}
