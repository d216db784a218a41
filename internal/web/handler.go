package web

import (
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"chapterquiz/internal/config"
	"chapterquiz/internal/deck"
)

//go:embed assets/*
var assetFiles embed.FS

type handler struct {
	cfg      Config
	logger   zerolog.Logger
	loader   *deck.Loader
	decoder  *RequestDecoder
	upgrader websocket.Upgrader
}

// ChapterView is the public description of a configured chapter.
type ChapterView struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Default bool   `json:"default"`
}

// NewHandler builds the router for the page, chapter list and WebSocket.
func NewHandler(cfg Config) (http.Handler, error) {
	if len(cfg.Chapters) == 0 {
		return nil, errors.New("web: at least one chapter is required")
	}
	decoder, err := NewRequestDecoder()
	if err != nil {
		return nil, err
	}
	assets, err := fs.Sub(assetFiles, "assets")
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger.With().Str("component", "web").Logger()
	h := &handler{
		cfg:      cfg,
		logger:   logger,
		loader:   deck.NewLoader(cfg.Fetcher, nil, logger),
		decoder:  decoder,
		upgrader: buildUpgrader(cfg.AllowedOrigins),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, h.accessLog, middleware.Recoverer)
	r.Method(http.MethodGet, "/", templ.Handler(indexPage(cfg.Chapters, cfg.DefaultChapter)))
	r.Get("/api/chapters", h.listChapters)
	r.Get("/ws", h.serveWS)
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(assets))))
	return r, nil
}

func (h *handler) chapter(id string) (config.ChapterConfig, bool) {
	for _, chapter := range h.cfg.Chapters {
		if chapter.ID == id {
			return chapter, true
		}
	}
	return config.ChapterConfig{}, false
}

func (h *handler) listChapters(w http.ResponseWriter, _ *http.Request) {
	views := make([]ChapterView, 0, len(h.cfg.Chapters))
	for _, chapter := range h.cfg.Chapters {
		views = append(views, ChapterView{
			ID:      chapter.ID,
			Title:   chapter.Title,
			Default: chapter.ID == h.cfg.DefaultChapter,
		})
	}
	respondJSON(w, http.StatusOK, views)
}

func (h *handler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("Request served")
	})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}
