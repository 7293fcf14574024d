package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-kivik/kivik/v4"
	_ "github.com/go-kivik/kivik/v4/couchdb"
	"github.com/rs/zerolog"

	"webapp-template/internal/config"
	"webapp-template/internal/database"
	"webapp-template/internal/repository"
	"webapp-template/internal/router"
	"webapp-template/internal/service"
	"webapp-template/internal/storage"
)

// App is the fully wired application.
type App struct {
	Config  *config.Config
	Notes   repository.NoteRepository
	Storage storage.Storage
	Handler http.Handler

	closeNotes func() error
}

// New opens the note store (applying migrations for SQL backends), the
// media storage, and builds the HTTP handler.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	notes, closeNotes, err := OpenNoteRepository(ctx, cfg, log, true)
	if err != nil {
		return nil, err
	}

	store, err := storage.New(ctx, cfg, log)
	if err != nil {
		closeNotes()
		return nil, fmt.Errorf("failed to initialize media storage: %w", err)
	}

	noteService := service.NewNoteService(notes)
	infoService := service.NewInfoService(notes, cfg.Server.AppVersion, store.Mode())
	adminService := service.NewAdminService(cfg.Admin, cfg.Security.SecretKey)
	healthService := service.NewHealthService(log).
		Register("database", service.CheckerFunc(notes.Ping)).
		Register("storage", store)

	if !adminService.Enabled() {
		log.Warn().Msg("ADMIN_USERNAME or ADMIN_PASSWORD_HASH not set, admin is disabled")
	}

	handler := router.New(router.Dependencies{
		Config:  cfg,
		Logger:  log,
		Notes:   noteService,
		Info:    infoService,
		Health:  healthService,
		Admin:   adminService,
		Storage: store,
	})

	return &App{
		Config:     cfg,
		Notes:      notes,
		Storage:    store,
		Handler:    handler,
		closeNotes: closeNotes,
	}, nil
}

func (a *App) Close() error {
	return a.closeNotes()
}

// OpenNoteRepository connects to the backend named by DATABASE_URL. The
// returned func releases the connection.
func OpenNoteRepository(ctx context.Context, cfg *config.Config, log zerolog.Logger, migrate bool) (repository.NoteRepository, func() error, error) {
	dbURL, err := config.ParseDatabaseURL(cfg.Database.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid DATABASE_URL: %w", err)
	}

	log = log.With().Str("component", "database").Str("driver", dbURL.Driver).Logger()

	if dbURL.Driver == config.DriverCouchDB {
		client, err := kivik.New("couch", dbURL.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to CouchDB: %w", err)
		}

		repo, err := repository.NewCouchNoteRepository(ctx, client, dbURL.Name)
		if err != nil {
			client.Close()
			return nil, nil, err
		}

		log.Info().Str("database", dbURL.Name).Msg("connected to CouchDB")
		return repo, client.Close, nil
	}

	db, err := database.Open(ctx, cfg.Database, dbURL)
	if err != nil {
		return nil, nil, err
	}

	if migrate {
		if err := database.Migrate(ctx, db, log); err != nil {
			return nil, nil, errors.Join(err, db.Close())
		}
	}

	log.Info().Str("database", dbURL.Name).Msg("connected to database")
	return repository.NewNoteRepository(db), db.Close, nil
}
