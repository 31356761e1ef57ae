// Package ui provides the web dashboard for adboard.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/adboard/internal/prefs"
	"github.com/leapstack-labs/adboard/internal/source"
	"github.com/leapstack-labs/adboard/internal/ui/features/common"
	"github.com/leapstack-labs/adboard/internal/ui/notifier"
	"github.com/leapstack-labs/adboard/internal/ui/router"
	"golang.org/x/sync/errgroup"
)

// ErrNoSessionSecret is returned by Handler when the cookie store has no key.
var ErrNoSessionSecret = errors.New("session secret must not be empty")

// DefaultShutdownTimeout bounds graceful shutdown when Config leaves it unset.
const DefaultShutdownTimeout = 5 * time.Second

// Reloader is a source whose backing file can be re-read, such as
// *source.Fixture.
type Reloader interface {
	Path() string
	Reload() error
}

// Server is the main UI server.
type Server struct {
	source          source.Source
	profiles        *common.Profiles
	hasSecret       bool
	port            int
	watch           bool
	dev             bool
	shutdownTimeout time.Duration
	logger          *slog.Logger
	notifier        *notifier.Notifier
}

// Config holds configuration for the UI server.
type Config struct {
	Source          source.Source
	Prefs           prefs.KV
	Port            int
	Watch           bool
	Dev             bool
	SessionSecret   string
	ShutdownTimeout time.Duration
	Logger          *slog.Logger
}

// NewServer creates a new UI server instance.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 365) // profiles are long-lived
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}

	return &Server{
		source:          cfg.Source,
		profiles:        common.NewProfiles(sessionStore, cfg.Prefs, logger),
		hasSecret:       cfg.SessionSecret != "",
		port:            cfg.Port,
		watch:           cfg.Watch,
		dev:             cfg.Dev,
		shutdownTimeout: timeout,
		logger:          logger,
		notifier:        notifier.New(),
	}
}

// Handler builds the HTTP handler with middleware and all routes.
func (s *Server) Handler() (http.Handler, error) {
	if !s.hasSecret {
		return nil, ErrNoSessionSecret
	}
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	if err := router.SetupRoutes(r, router.Deps{
		Source:   s.source,
		Profiles: s.profiles,
		Notifier: s.notifier,
		Logger:   s.logger,
		Dev:      s.dev,
	}); err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting UI server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	handler, err := s.Handler()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start file watcher if enabled
	if s.watch {
		if reloader, ok := s.source.(Reloader); ok {
			eg.Go(func() error {
				return s.watchFile(egctx, reloader)
			})
		} else {
			s.logger.Warn("--watch ignored: source has no backing file")
		}
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		s.logger.Debug("shutting down UI server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// watchFile reloads the source when its file changes and tells every open
// page to re-render.
func (s *Server) watchFile(ctx context.Context, src Reloader) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	// Editors often replace the file, so watch the directory.
	path := filepath.Clean(src.Path())
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		s.logger.Error("failed to watch fixture", "path", path, "error", err)
		// Don't fail - continue without watching
	}

	// Debounce timer
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != path {
				continue
			}

			// Debounce
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.reload(src)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

func (s *Server) reload(src Reloader) {
	s.logger.Debug("fixture changed, reloading", "path", src.Path())
	if err := src.Reload(); err != nil {
		s.logger.Error("reload failed", "error", err)
		return
	}
	s.notifier.Broadcast(notifier.Event{Reason: "data reloaded"})
}
