package source

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/leapstack-labs/adboard/internal/campaign"
)

// tables maps levels to backend tables.
var tables = map[campaign.Level]string{
	campaign.LevelAccounts:  "ad_accounts",
	campaign.LevelCampaigns: "campaigns",
	campaign.LevelAdSets:    "ad_sets",
	campaign.LevelAds:       "ads",
}

const selectColumns = `id, parent_id, name, status, spend, sales, impressions, clicks, daily_budget, updated_at`

// Postgres reads entities from the hosted Postgres database.
type Postgres struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenPostgres connects to Postgres through the pgx stdlib driver.
func OpenPostgres(ctx context.Context, cfg Config, logger *slog.Logger) (*Postgres, error) {
	dsn := buildPostgresDSN(cfg)

	logger.Debug("connecting to postgres", slog.String("host", cfg.Host), slog.String("database", cfg.Database))

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return NewPostgres(db, logger), nil
}

// NewPostgres wraps an existing connection.
func NewPostgres(db *sql.DB, logger *slog.Logger) *Postgres {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Postgres{db: db, logger: logger}
}

// List implements Source.
func (p *Postgres) List(ctx context.Context, level campaign.Level, parentID string) ([]campaign.Entity, error) {
	table, ok := tables[level]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
	}

	query := "SELECT " + selectColumns + " FROM " + table
	var args []any
	if level != campaign.LevelAccounts && parentID != "" {
		query += " WHERE parent_id = $1"
		args = append(args, parentID)
	}
	query += " ORDER BY created_at, id"

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var out []campaign.Entity
	for rows.Next() {
		var (
			e       campaign.Entity
			parent  sql.NullString
			budget  sql.NullFloat64
			updated sql.NullTime
		)
		if err := rows.Scan(&e.ID, &parent, &e.Name, &e.Status, &e.Spend, &e.Sales,
			&e.Impressions, &e.Clicks, &budget, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		e.Level = level
		e.ParentID = parent.String
		if budget.Valid {
			b := budget.Float64
			e.DailyBudget = &b
		}
		if updated.Valid {
			e.UpdatedAt = updated.Time
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s rows: %w", table, err)
	}

	p.logger.Debug("listed entities", slog.String("level", string(level)), slog.Int("count", len(out)))
	return out, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() error {
	if p.db == nil {
		return nil
	}
	return p.db.Close()
}

// buildPostgresDSN constructs a key=value connection string unless an
// explicit DSN is configured.
func buildPostgresDSN(cfg Config) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}

	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 5432
	}
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "require"
	}

	parts := []string{
		fmt.Sprintf("host=%s", host),
		fmt.Sprintf("port=%d", port),
	}
	if cfg.User != "" {
		parts = append(parts, fmt.Sprintf("user=%s", cfg.User))
	}
	if cfg.Password != "" {
		parts = append(parts, fmt.Sprintf("password=%s", cfg.Password))
	}
	if cfg.Database != "" {
		parts = append(parts, fmt.Sprintf("dbname=%s", cfg.Database))
	}
	parts = append(parts, fmt.Sprintf("sslmode=%s", sslmode))
	return strings.Join(parts, " ")
}
