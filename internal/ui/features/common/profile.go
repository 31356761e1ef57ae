package common

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/adboard/internal/prefs"
)

const (
	// SessionName is the cookie holding the browser's profile id.
	SessionName = "adboard"

	profileKey = "profile"
)

// Profiles maps browsers to their stored preferences. Every browser gets a
// random profile id in its session cookie on first visit; its settings are
// loaded from the store once and shared by all of its requests.
type Profiles struct {
	sessions sessions.Store
	kv       prefs.KV
	logger   *slog.Logger

	mu     sync.Mutex
	loaded map[string]*prefs.Preferences
}

// NewProfiles creates a Profiles resolver.
// If logger is nil, a discard logger is used.
func NewProfiles(store sessions.Store, kv prefs.KV, logger *slog.Logger) *Profiles {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Profiles{
		sessions: store,
		kv:       kv,
		logger:   logger,
		loaded:   make(map[string]*prefs.Preferences),
	}
}

// Resolve returns the preferences of the requesting browser, creating a
// profile and setting the session cookie when there is none yet.
func (p *Profiles) Resolve(w http.ResponseWriter, r *http.Request) (*prefs.Preferences, error) {
	session, err := p.sessions.Get(r, SessionName)
	if err != nil {
		// An undecodable cookie (e.g. after a secret change) gets a new session.
		p.logger.Debug("discarding invalid session", slog.String("error", err.Error()))
	}

	id, _ := session.Values[profileKey].(string)
	if id == "" {
		id = uuid.NewString()
		session.Values[profileKey] = id
		if err := session.Save(r, w); err != nil {
			return nil, fmt.Errorf("failed to save session: %w", err)
		}
		p.logger.Info("created profile", slog.String("profile", id))
	}

	return p.Load(r.Context(), id)
}

// Load returns the preferences of profile id, reading them from the store on
// first use.
func (p *Profiles) Load(ctx context.Context, id string) (*prefs.Preferences, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pr, ok := p.loaded[id]; ok {
		return pr, nil
	}
	pr, err := prefs.Load(ctx, p.kv, id, p.logger)
	if err != nil {
		return nil, err
	}
	p.loaded[id] = pr
	return pr, nil
}
