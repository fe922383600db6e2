// Package ledger records permanent links in the external relational
// store. Configuration comes from the environment and is entirely
// optional - absence disables the metadata step without failing a
// publish.
package ledger

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/rythmn1111/final-cam/domain/errors"
	"github.com/rythmn1111/final-cam/infra"
	"github.com/rythmn1111/final-cam/ports"
)

const (
	EnvURL        = "CAM_LEDGER_URL"
	EnvServiceKey = "CAM_LEDGER_SERVICE_KEY"
	EnvAnonKey    = "CAM_LEDGER_ANON_KEY"
	EnvTable      = "CAM_LEDGER_TABLE"
	EnvColumn     = "CAM_LEDGER_COLUMN"

	DefaultTable  = "captures"
	DefaultColumn = "image_link"
)

type Config struct {
	URL    string
	Key    string
	Table  string
	Column string
}

// env reads key from the environment. Empty counts as unset, so the
// fallback applies either way.
func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// FromEnv reads the ledger configuration. The service key wins over
// the anonymous key when both are set.
func FromEnv() Config {
	key := env(EnvServiceKey, "")
	if key == "" {
		key = env(EnvAnonKey, "")
	}
	return Config{
		URL:    env(EnvURL, ""),
		Key:    key,
		Table:  env(EnvTable, DefaultTable),
		Column: env(EnvColumn, DefaultColumn),
	}
}

// Enabled requires both the connection URL and a key.
func (c Config) Enabled() bool {
	return c.URL != "" && c.Key != ""
}

type GormLedger struct {
	log    ports.Logger
	db     ports.DB
	table  string
	column string
}

// dsn builds the connect string. A postgres:// URL gets the key as
// its password component, anything else is treated as keyword/value.
func dsn(cfg Config) (string, error) {
	if strings.HasPrefix(cfg.URL, "postgres://") || strings.HasPrefix(cfg.URL, "postgresql://") {
		u, err := url.Parse(cfg.URL)
		if err != nil {
			return "", err
		}
		user := "postgres"
		if u.User != nil {
			user = u.User.Username()
		}
		u.User = url.UserPassword(user, cfg.Key)
		return u.String(), nil
	}
	return cfg.URL + " password=" + cfg.Key, nil
}

// New opens the external store. The key is passed as the connection
// password and never logged.
func New(log ports.Logger, cfg Config) (*GormLedger, func(), error) {
	log = log.With(slog.String("entity", "GormLedger"))

	if !cfg.Enabled() {
		return nil, nil, errors.ErrLedgerNotConfigured
	}

	source, err := dsn(cfg)
	if err != nil {
		return nil, nil, err
	}
	db, closeDb, err := infra.NewDatabase(log, infra.DriverPostgres, source)
	if err != nil {
		return nil, nil, err
	}

	l := &GormLedger{
		log:    log,
		db:     db,
		table:  cfg.Table,
		column: cfg.Column,
	}
	log.Info("created", slog.String("table", cfg.Table), slog.String("column", cfg.Column))
	return l, closeDb, nil
}

func (l *GormLedger) Insert(ctx context.Context, link string) error {
	row := map[string]interface{}{l.column: link}
	return l.db.WithContext(ctx).Table(l.table).Create(row).Error
}
