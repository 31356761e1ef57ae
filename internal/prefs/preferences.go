package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/leapstack-labs/adboard/internal/campaign"
	"github.com/leapstack-labs/adboard/pkg/sortable"
)

// Stored keys.
const (
	keyEditMode   = "edit_mode"
	keyFilter     = "filter"
	keySortPrefix = "sort."
)

// Preferences are the settings of one profile. They are loaded once and
// every setter persists only the key it changes. Safe for concurrent use.
type Preferences struct {
	kv      KV
	profile string
	logger  *slog.Logger

	mu       sync.RWMutex
	editMode bool
	filter   campaign.Filter
	sorts    map[campaign.Level]*sortable.Config
}

// Snapshot is a read-only copy of a profile's settings.
type Snapshot struct {
	Profile  string                              `json:"profile"`
	EditMode bool                                `json:"edit_mode"`
	Filter   campaign.Filter                     `json:"filter"`
	Sorts    map[campaign.Level]*sortable.Config `json:"sorts"`
}

// Load reads all stored settings of profile. Values that cannot be decoded
// are logged and left at their defaults.
// If logger is nil, a discard logger is used.
func Load(ctx context.Context, kv KV, profile string, logger *slog.Logger) (*Preferences, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	p := &Preferences{
		kv:      kv,
		profile: profile,
		logger:  logger.With(slog.String("profile", profile)),
		sorts:   make(map[campaign.Level]*sortable.Config),
	}

	stored, err := kv.List(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	for key, raw := range stored {
		switch {
		case key == keyEditMode:
			p.decode(key, raw, &p.editMode)
		case key == keyFilter:
			p.decode(key, raw, &p.filter)
		case strings.HasPrefix(key, keySortPrefix):
			level, err := campaign.ParseLevel(strings.TrimPrefix(key, keySortPrefix))
			if err != nil {
				p.logger.Warn("ignoring sort for unknown level", slog.String("key", key))
				continue
			}
			var cfg sortable.Config
			if p.decode(key, raw, &cfg) && cfg.Active() {
				p.sorts[level] = &cfg
			}
		default:
			p.logger.Debug("ignoring unknown preference", slog.String("key", key))
		}
	}
	return p, nil
}

func (p *Preferences) decode(key, raw string, v any) bool {
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		p.logger.Warn("ignoring corrupt preference", slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	return true
}

func (p *Preferences) save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode preference %s: %w", key, err)
	}
	if err := p.kv.Set(ctx, p.profile, key, string(raw)); err != nil {
		return err
	}
	p.logger.Debug("preference saved", slog.String("key", key))
	return nil
}

// Profile returns the profile the settings belong to.
func (p *Preferences) Profile() string {
	return p.profile
}

// EditMode reports whether edit mode is on.
func (p *Preferences) EditMode() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.editMode
}

// SetEditMode turns edit mode on or off.
func (p *Preferences) SetEditMode(ctx context.Context, on bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.editMode == on {
		return nil
	}
	if err := p.save(ctx, keyEditMode, on); err != nil {
		return err
	}
	p.editMode = on
	return nil
}

// ToggleEditMode flips edit mode and returns the new value.
func (p *Preferences) ToggleEditMode(ctx context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	next := !p.editMode
	if err := p.save(ctx, keyEditMode, next); err != nil {
		return p.editMode, err
	}
	p.editMode = next
	return next, nil
}

// Filter returns the table filter.
func (p *Preferences) Filter() campaign.Filter {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.filter
}

// SetFilter replaces the table filter.
func (p *Preferences) SetFilter(ctx context.Context, f campaign.Filter) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.filter == f {
		return nil
	}
	if f.IsZero() {
		if err := p.kv.Delete(ctx, p.profile, keyFilter); err != nil {
			return err
		}
	} else if err := p.save(ctx, keyFilter, f); err != nil {
		return err
	}
	p.filter = f
	return nil
}

// Sort returns the stored sort of level, or nil.
func (p *Preferences) Sort(level campaign.Level) *sortable.Config {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.sorts[level].Clone()
}

// SetSort stores the sort of level. A nil or inactive cfg removes it.
func (p *Preferences) SetSort(ctx context.Context, level campaign.Level, cfg *sortable.Config) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.storeSort(ctx, level, cfg)
}

// AdvanceSort moves the sort of level one step through the click cycle for
// column and stores the result. Concurrent calls never read the same state.
func (p *Preferences) AdvanceSort(ctx context.Context, level campaign.Level, column string) (*sortable.Config, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	next := sortable.Advance(p.sorts[level], column)
	if err := p.storeSort(ctx, level, next); err != nil {
		return nil, err
	}
	return next.Clone(), nil
}

// storeSort must be called with p.mu held.
func (p *Preferences) storeSort(ctx context.Context, level campaign.Level, cfg *sortable.Config) error {
	if p.sorts[level].Equal(cfg) {
		return nil
	}
	key := keySortPrefix + string(level)
	if !cfg.Active() {
		if err := p.kv.Delete(ctx, p.profile, key); err != nil {
			return err
		}
		delete(p.sorts, level)
		return nil
	}
	if err := p.save(ctx, key, cfg); err != nil {
		return err
	}
	p.sorts[level] = cfg.Clone()
	return nil
}

// Reset removes every stored setting of the profile.
func (p *Preferences) Reset(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	stored, err := p.kv.List(ctx, p.profile)
	if err != nil {
		return fmt.Errorf("failed to list preferences: %w", err)
	}
	for key := range stored {
		if err := p.kv.Delete(ctx, p.profile, key); err != nil {
			return err
		}
	}
	p.editMode = false
	p.filter = campaign.Filter{}
	p.sorts = make(map[campaign.Level]*sortable.Config)
	return nil
}

// Snapshot returns a copy of the current settings.
func (p *Preferences) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	sorts := make(map[campaign.Level]*sortable.Config, len(p.sorts))
	for level, cfg := range p.sorts {
		sorts[level] = cfg.Clone()
	}
	return Snapshot{
		Profile:  p.profile,
		EditMode: p.editMode,
		Filter:   p.filter,
		Sorts:    sorts,
	}
}
