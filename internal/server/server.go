// Package server exposes the sheet over HTTP for editing and inspection.
package server

import (
	"context"
	"errors"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/litetable/litetable-sheet/internal/table"
	"github.com/rs/zerolog/log"
	"net/http"
	"time"
)

//go:generate mockgen -destination=server_mock.go -package=server -source=server.go

const (
	serverName      = "LiteTable http server"
	shutdownTimeout = 5 * time.Second
)

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
	Addr() string
}

type replicaManager interface {
	InsertRows(index int, rows []table.Row) error
	InsertColumns(index, count int) error
	DeleteRows(index, length int) error
	DeleteColumns(index, length int) error
	UpdateCells(row, col int, values []table.Row) error
	View(from, to table.Position) ([]table.Row, error)
	Snapshot() table.State
}

// stdServer adapts *http.Server to httpServer.
type stdServer struct {
	*http.Server
}

func (s *stdServer) Addr() string {
	return s.Server.Addr
}

type Server struct {
	address string
	port    int
	server  httpServer
}

type Config struct {
	Address string
	Port    int
	Replica replicaManager
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Address == "" {
		errGrp = append(errGrp, errors.New("address is required"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errGrp = append(errGrp, errors.New("port must be between 1 and 65535"))
	}
	if c.Replica == nil {
		errGrp = append(errGrp, errors.New("replica is required"))
	}
	return errors.Join(errGrp...)
}

// New returns an HTTP server routing sheet edits to the replica.
func New(cfg *Config) (*Server, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Server{
		address: cfg.Address,
		port:    cfg.Port,
		server: &stdServer{&http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Address, cfg.Port),
			Handler:           newRouter(&handler{replica: cfg.Replica}),
			ReadHeaderTimeout: 5 * time.Second,
		}},
	}, nil
}

func newRouter(h *handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/table", h.snapshot)
	r.Post("/view", h.view)
	r.Put("/cells", h.updateCells)

	r.Post("/rows", h.insertRows)
	r.Delete("/rows", h.deleteRows)
	r.Post("/columns", h.insertColumns)
	r.Delete("/columns", h.deleteColumns)

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		log.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("http request")
	})
}

// Start serves HTTP in the background. It only fails when the listener cannot be opened.
func (s *Server) Start() error {
	log.Info().Msgf("http server listening at %s", s.server.Addr())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == nil {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-time.After(500 * time.Millisecond):
		return nil
	}
}

func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown http server: %w", err)
	}
	return nil
}

// Name returns the name of the server.
func (s *Server) Name() string {
	return serverName
}
