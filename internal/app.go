// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	router "paperbook/internal/api"
	"paperbook/internal/api/handler"
	"paperbook/internal/config"
	"paperbook/internal/provider/theodds"
	"paperbook/internal/repository"
	"paperbook/internal/repository/postgres"
	"paperbook/internal/service"
	"paperbook/internal/util"
	"paperbook/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB
	Redis  *redis.Client

	// External providers
	OddsClient *theodds.Client

	// Repositories
	UserRepository        repository.UserRepository
	WalletRepository      repository.WalletRepository
	TransactionRepository repository.TransactionRepository
	BetRepository         repository.BetRepository
	ParlayRepository      repository.ParlayRepository
	PreferencesRepository repository.PreferencesRepository

	// Services
	UserService        service.UserService
	WalletService      service.WalletService
	BetService         service.BetService
	PredictionService  service.PredictionService
	PreferencesService service.PreferencesService

	// HTTP API
	HTTPHandler http.Handler
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
	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	// 4. Odds feed client, with a redis response cache when configured
	var cache *theodds.Cache
	if app.Config.RedisAddr != "" {
		app.Redis = redis.NewClient(&redis.Options{Addr: app.Config.RedisAddr})
		if err := app.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		cache = theodds.NewCache(app.Redis, app.Config.OddsAPI.CacheTTL)
		app.Logger.Info("Redis connection established.")
	} else {
		app.Logger.Info("REDIS_ADDR not set, odds responses will not be cached.")
	}
	app.OddsClient = theodds.NewClient(
		app.Config.OddsAPI.BaseURL,
		app.Config.OddsAPI.Key,
		app.Config.OddsAPI.Timeout,
		cache,
	)
	if app.Config.OddsAPI.Key == "" {
		app.Logger.Warn("ODDS_API_KEY not set, serving synthetic events.")
	}

	// 5. Initialize Repositories
	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.WalletRepository = postgres.NewWalletRepository(app.DB)
	app.TransactionRepository = postgres.NewTransactionRepository(app.DB)
	app.BetRepository = postgres.NewBetRepository(app.DB)
	app.ParlayRepository = postgres.NewParlayRepository(app.DB)
	app.PreferencesRepository = postgres.NewPreferencesRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	// 6. Initialize Services
	// Pass the concrete db.BeginTx, db.CommitTx, db.RollbackTx functions from pkg/db
	app.UserService = service.NewUserService(
		app.DB,
		app.DB,
		app.UserRepository,
		app.WalletRepository,
		app.PreferencesRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.WalletService = service.NewWalletService(
		app.DB, // This is the DBTxBeginner
		app.DB, // This is the DBExecutor
		app.WalletRepository,
		app.TransactionRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.BetService = service.NewBetService(
		app.DB,
		app.DB,
		app.BetRepository,
		app.ParlayRepository,
		app.WalletRepository,
		app.TransactionRepository,
		app.PreferencesRepository,
		app.OddsClient,
		app.Config.EnforceBets,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.PredictionService = service.NewPredictionService(app.OddsClient)
	app.PreferencesService = service.NewPreferencesService(
		app.DB,
		app.DB,
		app.PreferencesRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.Logger.Info("Services initialized.")

	// 7. Initialize HTTP Handlers and Router
	app.HTTPHandler = router.NewRouter(router.Handlers{
		User:        handler.NewUserHandler(app.UserService, app.Logger),
		Wallet:      handler.NewWalletHandler(app.WalletService, app.Logger),
		Bet:         handler.NewBetHandler(app.BetService, app.Logger),
		Odds:        handler.NewOddsHandler(app.OddsClient, app.Logger),
		Prediction:  handler.NewPredictionHandler(app.PredictionService, app.Logger),
		Preferences: handler.NewPreferencesHandler(app.PreferencesService, app.Logger),
	}, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.Redis != nil {
		if err := app.Redis.Close(); err != nil {
			app.Logger.Error("Failed to close redis connection", "error", err)
		}
	}
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
