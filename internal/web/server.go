package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"chapterquiz/internal/config"
	"chapterquiz/internal/deck"
	"chapterquiz/internal/quiz"
)

// Config captures the settings for serving the browser front end.
type Config struct {
	Addr           string
	AllowedOrigins []string
	Chapters       []config.ChapterConfig
	DefaultChapter string
	Quiz           quiz.Config
	// Fetcher opens chapter sources; BaseDir resolves relative paths.
	Fetcher deck.Fetcher
	// Scheduler drives countdowns; nil uses real tickers.
	Scheduler quiz.Scheduler
	Logger    zerolog.Logger
	// Ready, when set, receives the bound address once the listener is open.
	Ready func(addr string)
}

// Serve starts the HTTP server and blocks until ctx is done or the server
// fails. Open WebSocket sessions end with ctx.
func Serve(ctx context.Context, cfg Config) error {
	if ctx == nil {
		return errors.New("web: context is nil")
	}
	if cfg.Addr == "" {
		return errors.New("web: addr is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}
	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	cfg.Logger.Info().Str("addr", listener.Addr().String()).Msg("Serving quiz")
	if cfg.Ready != nil {
		cfg.Ready(listener.Addr().String())
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) || err == nil {
			return nil
		}
		return err
	}
}
