package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/getcontractd/contractd/pkg/config"
	"github.com/getcontractd/contractd/pkg/logging"
	"github.com/getcontractd/contractd/pkg/pact"
	"github.com/getcontractd/contractd/pkg/route"
	"github.com/getcontractd/contractd/pkg/state"
)

// ErrNotLoaded is returned by Start when Load has not run successfully.
var ErrNotLoaded = errors.New("route table not loaded")

// Server wires the contract loader, route table builder, conflict validator,
// and dispatcher into a single HTTP listener. Loading happens once, before
// the listener opens; changing contract data on disk requires a restart.
type Server struct {
	cfg      *config.ServerConfiguration
	log      *slog.Logger
	registry *state.Registry

	table   *route.Table
	handler *Handler

	httpServer *http.Server
	listener   net.Listener

	mu      sync.RWMutex
	running bool
}

// ServerOption is a functional option for configuring a Server.
type ServerOption func(*Server)

// WithLogger sets the operational logger for the server.
func WithLogger(log *slog.Logger) ServerOption {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// NewServer creates a Server with the given configuration.
func NewServer(cfg *config.ServerConfiguration, opts ...ServerOption) *Server {
	if cfg == nil {
		cfg = config.DefaultServerConfiguration()
	}
	s := &Server{
		cfg:      cfg,
		log:      logging.Nop(),
		registry: state.NewRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load runs the startup pipeline: contract loading, route table building,
// and conflict validation. Per-file contract failures are logged and
// skipped; a contract/custom state conflict is fatal because serving an
// ambiguous table would make selection nondeterministic for every
// downstream test run.
func (s *Server) Load() error {
	s.log.Info("loading contracts",
		"dir", s.cfg.ContractsDir,
		"customRoutes", s.cfg.CustomRoutesFile,
	)

	loader := pact.NewLoader(s.cfg.ContractsDir)
	loader.SetLogger(s.log)
	result, err := loader.Load()
	if err != nil {
		return fmt.Errorf("contract loading failed: %w", err)
	}
	for i := range result.Errors {
		s.log.Warn("contract unit skipped", "error", result.Errors[i].Error())
	}

	builder := route.NewBuilder(s.registry)
	builder.SetLogger(s.log)
	for _, in := range result.Interactions {
		builder.AddInteraction(in)
	}

	if s.cfg.CustomRoutesFile != "" {
		custom, err := config.LoadCustomRoutes(s.cfg.CustomRoutesFile)
		if err != nil {
			return fmt.Errorf("custom routes loading failed: %w", err)
		}
		for i := range custom.Routes {
			r := &custom.Routes[i]
			builder.AddCustom(r.Method, r.Path, r.StateNames(), pact.Response{
				Status:  r.Response.Status,
				Headers: r.Response.Headers,
				Body:    r.Response.Body,
			}, s.cfg.CustomRoutesFile)
		}
	}

	table, err := builder.Build()
	if err != nil {
		return fmt.Errorf("route table validation failed: %w", err)
	}

	s.table = table
	s.handler = NewHandler(table, s.registry)
	s.handler.SetLogger(s.log)

	s.log.Info("route table ready",
		"routes", table.Len(),
		"contractFiles", result.FileCount,
		"knownStates", s.registry.KnownCount(),
	)
	for _, key := range table.Keys() {
		s.log.Info("route registered", "route", key.String(), "variants", len(table.Variants(key)))
	}
	return nil
}

// Start opens the listener and begins serving in a background goroutine.
// Load must have succeeded first.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("server already running")
	}
	if s.handler == nil {
		return ErrNotLoaded
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener

	s.httpServer = &http.Server{
		Handler:      NewCORSMiddleware(s.handler),
		ReadTimeout:  time.Duration(s.cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeout) * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("http server stopped", "error", err)
		}
	}()

	s.running = true
	s.log.Info("mock server listening", "addr", listener.Addr().String())
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false
	return s.httpServer.Shutdown(ctx)
}

// IsRunning reports whether the listener is open.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the bound listener address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Registry returns the shared state registry.
func (s *Server) Registry() *state.Registry {
	return s.registry
}

// Table returns the built route table, or nil before Load.
func (s *Server) Table() *route.Table {
	return s.table
}
