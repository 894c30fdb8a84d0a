package bridge

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/boom-router/boom/pkg/location"
	"github.com/boom-router/boom/pkg/location/memory"
	"github.com/boom-router/boom/pkg/middleware"
	"github.com/boom-router/boom/pkg/router"
)

// Server serves a router over HTTP.
type Server struct {
	router *router.Router
	logger *slog.Logger
	mux    chi.Router

	upgrader websocket.Upgrader

	// navMu serializes every navigation reaching the provider.
	navMu sync.Mutex

	clientsMu sync.RWMutex
	clients   map[string]*client

	unsubscribe func()
	closeOnce   sync.Once
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
// Default: slog.Default()
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithCheckOrigin sets the WebSocket origin check.
// Default: same-origin only (gorilla's default).
func WithCheckOrigin(check func(r *http.Request) bool) Option {
	return func(s *Server) {
		s.upgrader.CheckOrigin = check
	}
}

// New creates a bridge for r and subscribes to its location.
func New(r *router.Router, opts ...Option) *Server {
	s := &Server{
		router:  r,
		logger:  slog.Default(),
		clients: make(map[string]*client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := chi.NewRouter()
	mux.Use(chimw.Recoverer)
	mux.Get("/location", s.handleLocation)
	mux.Post("/navigate", s.handleNavigate)
	mux.Get("/history", s.handleHistory)
	mux.Post("/reset", s.handleReset)
	mux.Get("/ws", s.handleWebSocket)
	s.mux = mux

	s.unsubscribe = r.Subscribe(s.broadcastLocation)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Mux returns the chi router so callers can mount more handlers, such as
// a /metrics endpoint.
func (s *Server) Mux() chi.Router {
	return s.mux
}

// Close unsubscribes from the router and closes every WebSocket client.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		s.unsubscribe()

		s.clientsMu.Lock()
		defer s.clientsMu.Unlock()
		for id, c := range s.clients {
			c.conn.Close()
			delete(s.clients, id)
		}
	})
}

// ClientCount returns the number of connected WebSocket clients.
func (s *Server) ClientCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// LocationMessage describes the router's current location.
type LocationMessage struct {
	Type string `json:"type,omitempty"`

	// Path is relative to the router base and decoded. A location outside
	// the base carries the "~" marker.
	Path string `json:"path"`

	// Search is the query string without "?".
	Search string `json:"search,omitempty"`

	// Href is the document-level anchor form of the location.
	Href string `json:"href"`
}

func (s *Server) snapshot() LocationMessage {
	p := s.router.Provider()
	return LocationMessage{
		Path:   s.router.Location(),
		Search: s.router.Search(),
		Href:   location.Href(p, p.Snapshot().Path),
	}
}

// navigate runs one navigation under navMu.
func (s *Server) navigate(target string, replace bool) LocationMessage {
	s.navMu.Lock()
	defer s.navMu.Unlock()

	var opts []location.NavigateOption
	if replace {
		opts = append(opts, location.WithReplace())
	}
	s.router.Navigate(target, opts...)
	return s.snapshot()
}

type recording interface {
	Recorder() (*memory.Recorder, bool)
}

type staticity interface {
	Static() bool
}

func (s *Server) recorder() (*memory.Recorder, bool) {
	if r, ok := middleware.Unwrap(s.router.Provider()).(recording); ok {
		return r.Recorder()
	}
	return nil, false
}

func (s *Server) static() bool {
	p := middleware.Unwrap(s.router.Provider())
	if location.IsStatic(p) {
		return true
	}
	st, ok := p.(staticity)
	return ok && st.Static()
}
