package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/musclemap/musclemap/internal/envstruct"
	"github.com/musclemap/musclemap/internal/errors"
	"github.com/musclemap/musclemap/internal/logging"
	"github.com/musclemap/musclemap/internal/prescription"
	"github.com/musclemap/musclemap/internal/sqlite"
)

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager
	prescriptions  *prescription.Service
	adminToken     string
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"MUSCLEMAP_ADDR" envDefault:"localhost:8080"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"MUSCLEMAP_SQLITE_URL" envDefault:"./musclemap.sqlite3"`
	// SolverBackend selects the packing implementation, either "greedy" or "mask".
	SolverBackend string `env:"MUSCLEMAP_SOLVER_BACKEND" envDefault:"greedy"`
	// OpenAIAPIKey enables the exercise generator when set.
	OpenAIAPIKey string `env:"MUSCLEMAP_OPENAI_API_KEY" envDefault:""`
	// AdminToken is the bearer token required by the admin endpoints. Admin
	// routes are disabled when empty.
	AdminToken string `env:"MUSCLEMAP_ADMIN_TOKEN" envDefault:""`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	profiles, err := prescription.LoadProfiles()
	if err != nil {
		return errors.Wrap(err, "load solver profiles")
	}
	var backend prescription.SolverBackend
	switch cfg.SolverBackend {
	case "greedy":
		backend = prescription.NewGreedyBackend(profiles)
	case "mask":
		backend = prescription.NewMaskBackend(profiles)
	default:
		return errors.New("unknown solver backend " + cfg.SolverBackend)
	}

	var generator *prescription.ExerciseGenerator
	if cfg.OpenAIAPIKey != "" {
		generator = prescription.NewExerciseGenerator(cfg.OpenAIAPIKey)
	}

	app := application{
		logger:         logger,
		sessionManager: initializeSessionManager(db),
		prescriptions:  newPrescriptionService(logger, db, backend, generator),
		adminToken:     cfg.AdminToken,
	}

	if err = app.configureAndStartServer(ctx, cfg.Addr, app.routes()); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

// newPrescriptionService keeps the nil generator check in one place so an
// unset API key yields a nil interface inside the service.
func newPrescriptionService(logger *slog.Logger, db *sqlite.Database, backend prescription.SolverBackend, generator *prescription.ExerciseGenerator) *prescription.Service {
	if generator == nil {
		return prescription.NewService(logger, db, backend, nil)
	}
	return prescription.NewService(logger, db, backend, generator)
}

func initializeSessionManager(dbs *sqlite.Database) *scs.SessionManager {
	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(dbs.ReadWrite, 24*time.Hour) //nolint:mnd // day
	sessionManager.Lifetime = 12 * time.Hour                                                //nolint:mnd // half a day
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.Secure = true
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteStrictMode
	return sessionManager
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
