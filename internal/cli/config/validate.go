package config

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/adboard/internal/cli/output"
	"github.com/leapstack-labs/adboard/internal/source"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	switch c.Source.Type {
	case source.TypeFixture, "":
	case source.TypePostgres:
		if c.Source.DSN == "" && c.Source.Host == "" {
			errs = append(errs, errors.New("source.host or source.dsn is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported source type %q (want %s or %s)", c.Source.Type, source.TypeFixture, source.TypePostgres))
	}

	if c.UI.Port < 1 || c.UI.Port > 65535 {
		errs = append(errs, fmt.Errorf("ui.port must be between 1 and 65535, got %d", c.UI.Port))
	}
	if c.UI.SessionSecret == "" {
		errs = append(errs, errors.New("ui.session_secret must not be empty"))
	}
	if c.UI.ShutdownTimeout < 0 {
		errs = append(errs, fmt.Errorf("ui.shutdown_timeout must not be negative, got %s", c.UI.ShutdownTimeout))
	}
	if _, err := output.ParseMode(c.OutputFormat); err != nil {
		errs = append(errs, err)
	}
	if c.Profile == "" {
		errs = append(errs, errors.New("profile must not be empty"))
	}

	return errors.Join(errs...)
}
