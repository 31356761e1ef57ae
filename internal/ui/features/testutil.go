// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/adboard/internal/prefs"
	"github.com/leapstack-labs/adboard/internal/source"
	"github.com/leapstack-labs/adboard/internal/testutil"
	"github.com/leapstack-labs/adboard/internal/ui/features/common"
	"github.com/leapstack-labs/adboard/internal/ui/notifier"
)

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Source       *source.Fixture
	Store        *prefs.SQLiteStore
	Profiles     *common.Profiles
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore

	// cookies carries the session between requests of one simulated browser.
	cookies []*http.Cookie
}

// SetupTestFixture creates a fixture source from content (the sample
// hierarchy when empty), an in-memory preference store and a notifier.
func SetupTestFixture(t *testing.T, content string) *TestFixture {
	t.Helper()

	logger := testutil.NewTestLogger(t)
	if content == "" {
		content = testutil.SampleFixture
	}

	src, err := source.LoadFixture(testutil.WriteFixture(t, content), logger)
	require.NoError(t, err)

	store := prefs.NewSQLiteStore()
	require.NoError(t, store.Open(":memory:"))
	t.Cleanup(func() {
		_ = store.Close()
		_ = src.Close()
	})

	sessionStore := NewTestSessionStore()
	return &TestFixture{
		Source:       src,
		Store:        store,
		Profiles:     common.NewProfiles(sessionStore, store, logger),
		Notifier:     NewTestNotifier(),
		SessionStore: sessionStore,
	}
}

// NewRequest builds a request that carries the session of earlier requests.
func (f *TestFixture) NewRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	for _, c := range f.cookies {
		req.AddCookie(c)
	}
	return req
}

// Serve runs req through h and keeps any session cookie it sets.
func (f *TestFixture) Serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if cookies := rec.Result().Cookies(); len(cookies) > 0 {
		f.cookies = cookies
	}
	return rec
}

// RequestWithPathParam wraps a request with chi URL params.
func RequestWithPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// RequestWithTimeout wraps a request with a context timeout.
func RequestWithTimeout(r *http.Request, timeout time.Duration) *http.Request {
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	// Note: caller should handle cleanup, but for tests the timeout will trigger
	_ = cancel // suppress lint warning, context will be cancelled by timeout
	return r.WithContext(ctx)
}

// NewTestNotifier creates a notifier for testing.
func NewTestNotifier() *notifier.Notifier {
	return notifier.New()
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
}
