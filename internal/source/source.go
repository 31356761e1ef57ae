// Package source fetches advertising records from the hosted backend or a
// local fixture file.
package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/adboard/internal/campaign"
)

// Source types.
const (
	TypePostgres = "postgres"
	TypeFixture  = "fixture"
)

// ErrUnknownLevel is returned when a level has no backing table.
var ErrUnknownLevel = errors.New("unknown level")

// Source lists the entities of one level. parentID narrows the result to
// children of that parent; it is ignored for accounts.
type Source interface {
	List(ctx context.Context, level campaign.Level, parentID string) ([]campaign.Entity, error)
	Close() error
}

// Config selects and configures a Source.
type Config struct {
	Type     string `koanf:"type"`
	Fixture  string `koanf:"fixture"`
	DSN      string `koanf:"dsn"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Database string `koanf:"database"`
	SSLMode  string `koanf:"sslmode"`
}

// Open creates the Source described by cfg.
// If logger is nil, a discard logger is used.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (Source, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	switch cfg.Type {
	case TypePostgres:
		return OpenPostgres(ctx, cfg, logger)
	case TypeFixture, "":
		if cfg.Fixture == "" {
			return nil, fmt.Errorf("fixture source requires a fixture path")
		}
		return LoadFixture(cfg.Fixture, logger)
	default:
		return nil, fmt.Errorf("unsupported source type %q", cfg.Type)
	}
}
