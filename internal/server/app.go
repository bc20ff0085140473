// Package server initializes the auth application: it opens the database,
// applies migrations, and wires the credential and photo services to their
// dependencies.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/innoclinic/authsvc/internal/logging"
	"github.com/innoclinic/authsvc/internal/server/auth"
	"github.com/innoclinic/authsvc/internal/server/config"
	"github.com/innoclinic/authsvc/internal/server/repositories/repomanager"
	"github.com/innoclinic/authsvc/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	credentials *services.CredentialService
	photos      *services.PhotoService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	db, err := repomanager.Open(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	hasher := auth.NewPasswordHasher(c.PasswordSaltSize, c.PasswordHashSize, c.PasswordIterations)

	issuer, err := auth.NewTokenIssuer(c.SecretKey, c.TokenIssuer, c.TokenAudience, c.AccessTokenValidityDuration)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("token issuer init error: %w", err)
	}

	cs := services.NewCredentialService(db, rm, hasher, issuer, logger, c)
	ps := services.NewPhotoService(db, rm, c)

	return &App{config: c, logger: logger, db: db, credentials: cs, photos: ps}, nil
}

func (app *App) Credentials() *services.CredentialService {
	return app.credentials
}

func (app *App) Photos() *services.PhotoService {
	return app.photos
}

func (app *App) Logger() logging.Logger {
	return app.logger
}

func (app *App) Close() error {
	return app.db.Close()
}
