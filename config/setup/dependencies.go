package setup

import (
	"holdings/app"
	"holdings/database"
	"log/slog"
)

// InitStore prepares the database file and bootstraps the schema once at startup
func InitStore(dbPath string, logger *slog.Logger) (*database.Store, error) {
	store, err := database.NewStore(dbPath, logger)
	if err != nil {
		return nil, err
	}

	if err := store.EnsureSchema(); err != nil {
		return nil, err
	}

	logger.Info("database initialized", "path", store.Path())
	return store, nil
}

// InitApp initializes the application with all dependencies
func InitApp(store *database.Store, logger *slog.Logger) *app.App {
	application := app.New(database.NewRepository(store), logger)
	logger.Info("application initialized with dependency injection")
	return application
}
