// Package server exposes the widget-facing HTTP and WebSocket API:
// the chat assistant, the enquiry mirror endpoint, the contact form,
// and the static content catalog.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/upliftr/upliftr/internal/assistant"
	"github.com/upliftr/upliftr/internal/config"
	"github.com/upliftr/upliftr/internal/logging"
	"github.com/upliftr/upliftr/internal/sheets"
	"github.com/upliftr/upliftr/internal/store"
	"github.com/upliftr/upliftr/internal/version"
)

// Server is the Upliftr backend HTTP + WebSocket server.
type Server struct {
	cfg      config.Config
	log      *logging.Logger
	upgrader websocket.Upgrader

	// Chat assistant (nil if no Gemini API key is configured)
	assistant *assistant.Assistant
	sessions  *assistant.Registry

	// Enquiry mirror (nil if no spreadsheet is configured)
	mirror sheets.Appender

	// Contact submissions (nil disables /api/contact)
	contacts *store.ContactStore

	httpServer *http.Server
}

// ServerOption configures the server.
type ServerOption func(*Server)

// WithAssistant wires the chat assistant and its session registry.
func WithAssistant(a *assistant.Assistant, sessions *assistant.Registry) ServerOption {
	return func(s *Server) {
		s.assistant = a
		s.sessions = sessions
	}
}

// WithMirror wires the spreadsheet appender behind /api/save-enquiry.
func WithMirror(m sheets.Appender) ServerOption {
	return func(s *Server) {
		s.mirror = m
	}
}

// WithContacts wires the contact submission store.
func WithContacts(c *store.ContactStore) ServerOption {
	return func(s *Server) {
		s.contacts = c
	}
}

// New creates a new server.
func New(cfg config.Config, log *logging.Logger, opts ...ServerOption) *Server {
	s := &Server{
		cfg: cfg,
		log: log.Sub("server"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     checkWebSocketOrigin(cfg.Server.AllowedOrigins),
		},
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// checkWebSocketOrigin validates WebSocket Origin headers against the
// configured origin list. Requests without an Origin header (non-browser
// clients) are always allowed.
func checkWebSocketOrigin(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}

// resolveBindAddr computes the listen address from config.
func resolveBindAddr(cfg config.ServerConfig) string {
	switch cfg.Bind {
	case "lan":
		return fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	case "custom":
		host := cfg.CustomBindHost
		if host == "" {
			host = "0.0.0.0"
		}
		return fmt.Sprintf("%s:%d", host, cfg.Port)
	default:
		return fmt.Sprintf("127.0.0.1:%d", cfg.Port)
	}
}

// Start begins listening for HTTP and WebSocket connections.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	addr := resolveBindAddr(s.cfg.Server)

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	handler := withMiddleware(mux, s.log, s.cfg.Server.AllowedOrigins)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // chat turns wait on the model
		IdleTimeout:  120 * time.Second,
		BaseContext:  func(l net.Listener) context.Context { return ctx },
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s.log.Info().
		Str("addr", ln.Addr().String()).
		Str("version", version.Version).
		Bool("chat", s.assistant != nil).
		Bool("mirror", s.mirror != nil).
		Msg("server starting")

	go func() {
		<-ctx.Done()
		s.log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.httpServer.Shutdown(shutdownCtx)
	}()

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Addr returns the server's listen address, or empty string if not started.
func (s *Server) Addr() string {
	if s.httpServer != nil {
		return s.httpServer.Addr
	}
	return ""
}

// registerRoutes sets up all HTTP routes on the server mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)

	// Method handling is inside the handler: non-POST must get the
	// endpoint's own {ok:false} body, not the mux's default 405.
	mux.HandleFunc("/api/save-enquiry", s.handleSaveEnquiry)

	mux.HandleFunc("POST /api/contact", s.handleContact)
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("GET /ws/chat", s.handleChatSocket)

	mux.HandleFunc("GET /api/content/services", s.handleServices)
	mux.HandleFunc("GET /api/content/services/{id}", s.handleServiceDetail)
	mux.HandleFunc("GET /api/content/portfolio", s.handlePortfolio)
	mux.HandleFunc("GET /api/content/case-studies/{id}", s.handleCaseStudy)

	mux.HandleFunc("/", handleNotFound)
}
