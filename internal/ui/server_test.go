package ui

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/adboard/internal/campaign"
	"github.com/leapstack-labs/adboard/internal/prefs"
	"github.com/leapstack-labs/adboard/internal/source"
	"github.com/leapstack-labs/adboard/internal/testutil"
)

func setupTestServer(t *testing.T, dev bool) (*Server, *source.Fixture) {
	t.Helper()

	logger := testutil.NewTestLogger(t)
	src, err := source.LoadFixture(testutil.WriteFixture(t, testutil.SampleFixture), logger)
	require.NoError(t, err)

	return NewServer(Config{
		Source:        src,
		Prefs:         &prefs.MemoryKV{},
		Dev:           dev,
		SessionSecret: "test-secret-key-32-bytes-long!!",
		Logger:        logger,
	}), src
}

func TestServer_Handler(t *testing.T) {
	s, _ := setupTestServer(t, false)
	h, err := s.Handler()
	require.NoError(t, err)

	tests := []struct {
		target     string
		wantStatus int
		wantBody   string
	}{
		{target: "/healthz", wantStatus: http.StatusOK, wantBody: "OK"},
		{target: "/static/dashboard.css", wantStatus: http.StatusOK, wantBody: ".entity-table"},
		{target: "/accounts", wantStatus: http.StatusOK, wantBody: "Main store"},
		{target: "/", wantStatus: http.StatusFound},
		{target: "/reload", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestServer_DevHotReload(t *testing.T) {
	s, _ := setupTestServer(t, true)
	h, err := s.Handler()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hotreload", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/reload", nil)
	ctx, cancel := context.WithTimeout(req.Context(), 100*time.Millisecond)
	defer cancel()
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(ctx))

	assert.Contains(t, rec.Body.String(), "window.location.reload()")
}

func TestServer_DefaultShutdownTimeout(t *testing.T) {
	s := NewServer(Config{})
	assert.Equal(t, DefaultShutdownTimeout, s.shutdownTimeout)
	assert.NotNil(t, s.logger)
}

func TestServer_WatchReloadsFixture(t *testing.T) {
	s, src := setupTestServer(t, false)

	updates := s.Notifier().Subscribe()
	defer s.Notifier().Unsubscribe(updates)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.watchFile(ctx, src) }()

	// Give the watcher time to register.
	time.Sleep(50 * time.Millisecond)
	updated := strings.Replace(testutil.SampleFixture, "Main store", "Outlet store", 1)
	require.NoError(t, os.WriteFile(src.Path(), []byte(updated), 0600))

	select {
	case ev := <-updates:
		assert.Equal(t, "data reloaded", ev.Reason)
		assert.Empty(t, ev.Profile)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a reload broadcast")
	}

	accounts, err := src.List(context.Background(), campaign.LevelAccounts, "")
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Outlet store", accounts[0].Name)

	cancel()
	assert.NoError(t, <-done)
}

type failingReloader struct{}

func (failingReloader) Path() string  { return "fixture.yaml" }
func (failingReloader) Reload() error { return errors.New("broken yaml") }

func TestServer_ReloadFailureKeepsQuiet(t *testing.T) {
	s, _ := setupTestServer(t, false)

	updates := s.Notifier().Subscribe()
	defer s.Notifier().Unsubscribe(updates)

	s.reload(failingReloader{})

	select {
	case ev := <-updates:
		t.Fatalf("unexpected broadcast %+v", ev)
	default:
	}
}

func TestServer_HandlerRequiresSessionSecret(t *testing.T) {
	s := NewServer(Config{Prefs: &prefs.MemoryKV{}})

	h, err := s.Handler()
	assert.Nil(t, h)
	assert.ErrorIs(t, err, ErrNoSessionSecret)
	assert.ErrorIs(t, s.Serve(context.Background()), ErrNoSessionSecret)
}
