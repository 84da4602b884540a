// Package web serves the browser UI and a small JSON API over the catalog.
package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/gourmet-gacha/gacha/internal/config"
	"github.com/gourmet-gacha/gacha/internal/services"
)

// Options configures the browser UI.
type Options struct {
	// SpinDelay is how long a draw request waits before answering, so the
	// spinning state stays visible. Zero answers immediately.
	SpinDelay time.Duration
}

// NewRouter builds the router serving the browser UI and the JSON API.
func NewRouter(catalog services.Catalog, opts Options) http.Handler {
	h := &handlers{catalog: catalog, spinDelay: opts.SpinDelay}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(RequestLogger(config.GetLogger()))
	router.Use(chimw.Recoverer)

	router.Get("/healthz", h.healthz)

	router.Route("/api", func(r chi.Router) {
		r.Use(NoStore())
		r.Get("/draw", h.apiDraw)
		r.Get("/status", h.apiStatus)
	})

	router.Group(func(r chi.Router) {
		r.Use(HTMX())
		r.Use(NoStore())
		r.Get("/", h.index)
		r.Get("/panel", h.panel)
		r.Post("/draw", h.draw)
		r.Post("/reset", h.reset)
	})

	return router
}

// NewHTTPServer creates the HTTP server for the browser UI.
func NewHTTPServer(address string, port int, handler http.Handler) *http.Server {
	if port == 0 {
		port = 3000
	}
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", address, port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
