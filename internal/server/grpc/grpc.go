package grpc

import (
	"errors"
	"fmt"
	"github.com/litetable/litetable-sheet/internal/table"
	"github.com/rs/zerolog/log"
	grpc2 "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
	"net"
	"time"
)

//go:generate mockgen -destination=grpc_mock.go -package=grpc -source=grpc.go

type grpcServer interface {
	Serve(lis net.Listener) error
	GracefulStop()
}

type replicaManager interface {
	Apply(updates []table.Update) (int, error)
}

// Server implements the app.Dependency interface for a gRPC server
type Server struct {
	address  string
	server   grpcServer
	port     int
	listener net.Listener
	streams  *streams
}

type Config struct {
	Address string
	Port    int
	Replica replicaManager
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Address == "" {
		errGrp = append(errGrp, fmt.Errorf("address required"))
	}
	if c.Port == 0 {
		errGrp = append(errGrp, fmt.Errorf("port required"))
	}
	if c.Replica == nil {
		errGrp = append(errGrp, fmt.Errorf("replica required"))
	}

	return errors.Join(errGrp...)
}

// NewServer creates a new gRPC server instance
func NewServer(cfg *Config) (*Server, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	srv := grpc2.NewServer()
	s := newStreams()

	srv.RegisterService(&Replica_ServiceDesc, &replicaService{
		replica: cfg.Replica,
		streams: s,
	})
	reflection.Register(srv)

	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", cfg.Address, cfg.Port))
	if err != nil {
		return nil, fmt.Errorf("failed to create listener on port %d: %w", cfg.Port, err)
	}

	return &Server{
		address:  cfg.Address,
		server:   srv,
		port:     cfg.Port,
		listener: lis,
		streams:  s,
	}, nil
}

// Emit forwards an applied update to every Subscribe stream.
func (s *Server) Emit(u table.Update) {
	s.streams.Emit(u)
}

func (s *Server) Start() error {
	log.Info().Msgf("gRPC server listening at %s:%d", s.address, s.port)

	errCh := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		if err := s.server.Serve(s.listener); err != nil {
			errCh <- err
			log.Error().Err(err).Msg("gRPC server failed")
			return
		}
		errCh <- nil
	}()

	// Block briefly for error or nil return
	select {
	case err := <-errCh:
		return err
	case <-time.After(500 * time.Millisecond):
		// Assume server started successfully
		return nil
	}
}

func (s *Server) Stop() error {
	log.Info().Msg("Stopping gRPC server")
	// Subscribe streams only end when told to, GracefulStop would wait on them forever.
	s.streams.close()
	s.server.GracefulStop()
	return nil
}

func (s *Server) Name() string {
	return "gRPC Server"
}
