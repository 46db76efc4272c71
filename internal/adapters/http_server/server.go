package httpserver

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type Server struct{ mux *chi.Mux }

// New builds the router. pageTimeout <= 0 means no timeout.
func New(pageTimeout time.Duration) *Server {
	m := chi.NewRouter()

	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	if pageTimeout > 0 {
		m.Use(Timeout(pageTimeout))
	}
	m.Use(Metrics)
	m.Use(Logger(log.Logger))

	return &Server{mux: m}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}

// MountStatic serves dir under /static/ and dir/images under /images/.
func (s *Server) MountStatic(dir string) {
	s.mux.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(dir))))
	s.mux.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(filepath.Join(dir, "images")))))
}
