// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"finreview/internal/config"
	"finreview/internal/fetch"
	"finreview/internal/repository"
	"finreview/internal/repository/memory"
	"finreview/internal/repository/postgres"
	"finreview/internal/util"
	"finreview/internal/view"
	"finreview/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB // nil unless DATA_SOURCE=postgres

	// Data source
	EmployeeRepository    repository.EmployeeRepository
	TransactionRepository repository.TransactionRepository

	// Fetch layer
	Cache     *fetch.Cache
	Endpoints fetch.Endpoints

	View *view.Coordinator
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger(cfg.LogLevel)
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.", "data_source", cfg.DataSource)

	// 3. Initialize the data source
	if err := app.initDataSource(ctx); err != nil {
		return err
	}

	// 4. Initialize the fetch layer and the view
	app.Wire(app.EmployeeRepository, app.TransactionRepository)
	app.Logger.Info("View initialized.")

	return nil
}

// Wire builds the cache, endpoints and view over the given data source.
func (app *Application) Wire(employees repository.EmployeeRepository, transactions repository.TransactionRepository) {
	if app.Logger == nil {
		app.Logger = util.GetLogger()
	}
	app.EmployeeRepository = employees
	app.TransactionRepository = transactions
	app.Cache = fetch.NewCache(app.Logger)
	app.Endpoints = fetch.NewEndpoints(employees, transactions, app.Logger)
	app.View = view.NewCoordinator(app.Cache, app.Endpoints, app.Logger)
}

func (app *Application) initDataSource(ctx context.Context) error {
	dataset := memory.DefaultDataset()
	if seed := app.Config.Seed; seed.Synthetic() {
		dataset = memory.GenerateDataset(seed.SyntheticEmployees, seed.SyntheticPerEmployee)
	}

	switch app.Config.DataSource {
	case config.DataSourcePostgres:
		database, err := db.NewPostgresDB(ctx, app.Config.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		app.DB = database
		app.Logger.Info("Database connection established.")

		if err := db.RunMigrations(app.DB.DB); err != nil {
			return err
		}
		var seeded bool
		err = db.WithinTx(ctx, app.DB, func(tx *sqlx.Tx) error {
			var seedErr error
			seeded, seedErr = postgres.NewStore(tx).Seed(ctx, dataset.Employees, dataset.Transactions)
			return seedErr
		})
		if err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}
		app.Logger.Info("Database schema ready.", "seeded", seeded)

		store := postgres.NewStore(app.DB)
		app.EmployeeRepository, app.TransactionRepository = store, store

	case config.DataSourceMemory:
		store := memory.NewStore(dataset)
		app.EmployeeRepository, app.TransactionRepository = store, store
		app.Logger.Info("In-memory store seeded.",
			"employees", len(dataset.Employees),
			"transactions", len(dataset.Transactions),
		)

	default:
		return fmt.Errorf("%w: %q", util.ErrUnknownDataSource, app.Config.DataSource)
	}
	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
