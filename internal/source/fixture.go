package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"sync"

	"github.com/leapstack-labs/adboard/internal/campaign"
	"gopkg.in/yaml.v3"
)

// fixtureFile is the on-disk layout of a fixture.
type fixtureFile struct {
	Accounts  []campaign.Entity `yaml:"accounts"`
	Campaigns []campaign.Entity `yaml:"campaigns"`
	AdSets    []campaign.Entity `yaml:"adsets"`
	Ads       []campaign.Entity `yaml:"ads"`
}

// Fixture serves entities from a YAML file. It is safe for concurrent use
// and can be reloaded while serving.
type Fixture struct {
	path   string
	logger *slog.Logger

	mu   sync.RWMutex
	data map[campaign.Level][]campaign.Entity
}

// LoadFixture reads the fixture at path.
func LoadFixture(path string, logger *slog.Logger) (*Fixture, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	f := &Fixture{path: path, logger: logger}
	if err := f.Reload(); err != nil {
		return nil, err
	}
	return f, nil
}

// Path returns the file the fixture was loaded from.
func (f *Fixture) Path() string {
	return f.path
}

// Reload re-reads the fixture file. On error the previous data is kept.
func (f *Fixture) Reload() error {
	content, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("failed to read fixture %s: %w", f.path, err)
	}
	data, err := parseFixture(content)
	if err != nil {
		return fmt.Errorf("failed to parse fixture %s: %w", f.path, err)
	}

	f.mu.Lock()
	f.data = data
	f.mu.Unlock()

	f.logger.Debug("fixture loaded",
		slog.String("path", f.path),
		slog.Int("accounts", len(data[campaign.LevelAccounts])),
		slog.Int("ads", len(data[campaign.LevelAds])))
	return nil
}

func parseFixture(content []byte) (map[campaign.Level][]campaign.Entity, error) {
	var file fixtureFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, err
	}

	data := map[campaign.Level][]campaign.Entity{
		campaign.LevelAccounts:  file.Accounts,
		campaign.LevelCampaigns: file.Campaigns,
		campaign.LevelAdSets:    file.AdSets,
		campaign.LevelAds:       file.Ads,
	}
	for level, entities := range data {
		seen := make(map[string]struct{}, len(entities))
		for i := range entities {
			if entities[i].ID == "" {
				return nil, fmt.Errorf("%s[%d]: missing id", level, i)
			}
			if _, dup := seen[entities[i].ID]; dup {
				return nil, fmt.Errorf("%s: duplicate id %q", level, entities[i].ID)
			}
			seen[entities[i].ID] = struct{}{}
			entities[i].Level = level
		}
	}
	return data, nil
}

// List implements Source.
func (f *Fixture) List(ctx context.Context, level campaign.Level, parentID string) ([]campaign.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.RLock()
	entities, ok := f.data[level]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
	}

	if level == campaign.LevelAccounts || parentID == "" {
		return slices.Clone(entities), nil
	}
	var out []campaign.Entity
	for _, e := range entities {
		if e.ParentID == parentID {
			out = append(out, e)
		}
	}
	return out, nil
}

// Close implements Source.
func (f *Fixture) Close() error {
	return nil
}
