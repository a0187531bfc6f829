package cdc_emitter

import (
	"context"
	"errors"
	"fmt"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/rs/zerolog/log"
	"io"
	"net"
	"sync"
	"sync/atomic"
)

const defaultBuffer = 100000

type Config struct {
	Port    int
	Address string
	// Buffer is how many events may wait for delivery before new ones are dropped.
	Buffer int
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Port <= 0 {
		errGrp = append(errGrp, fmt.Errorf("invalid port: %d", c.Port))
	}
	if c.Address == "" {
		errGrp = append(errGrp, fmt.Errorf("invalid address: %s", c.Address))
	}
	if c.Buffer < 0 {
		errGrp = append(errGrp, fmt.Errorf("invalid buffer: %d", c.Buffer))
	}
	return errors.Join(errGrp...)
}

// Manager fans every update the node applies out to TCP clients as JSON lines. Events are
// numbered, so a client that sees a gap in seq knows it missed updates.
type Manager struct {
	address  string
	listener net.Listener

	seq      atomic.Uint64
	dropped  atomic.Uint64
	emitChan chan *event

	procCtx    context.Context
	procCancel context.CancelFunc

	clients    mapset.Set[net.Conn]
	clientsMux sync.Mutex
}

func New(cfg *Config) (*Manager, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	address := fmt.Sprintf("%s:%d", cfg.Address, cfg.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", address, err)
	}

	buffer := cfg.Buffer
	if buffer == 0 {
		buffer = defaultBuffer
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		address:    address,
		listener:   listener,
		emitChan:   make(chan *event, buffer),
		procCtx:    ctx,
		procCancel: cancel,
		clients:    mapset.NewThreadUnsafeSet[net.Conn](),
	}, nil
}

func (m *Manager) Start() error {
	go m.dispatch()
	go m.accept()

	log.Info().Msgf("CDC emitter listening at %s", m.address)
	return nil
}

func (m *Manager) dispatch() {
	for {
		select {
		case <-m.procCtx.Done():
			return
		case e := <-m.emitChan:
			m.raiseCDCEvent(e)
		}
	}
}

func (m *Manager) accept() {
	for {
		conn, err := m.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || m.procCtx.Err() != nil {
				return
			}
			log.Error().Err(err).Msg("failed to accept CDC connection")
			continue
		}

		go m.handle(conn)
	}
}

// Stop closes the listener and disconnects every client.
func (m *Manager) Stop() error {
	if m.procCancel != nil {
		m.procCancel()
	}

	var errGrp []error
	if m.listener != nil {
		if err := m.listener.Close(); err != nil {
			errGrp = append(errGrp, fmt.Errorf("failed to close listener: %w", err))
		}
	}

	if m.clients != nil {
		m.clientsMux.Lock()
		m.clients.Each(func(c net.Conn) bool {
			_ = c.Close()
			return false
		})
		m.clients.Clear()
		m.clientsMux.Unlock()
	}

	if n := m.dropped.Load(); n > 0 {
		log.Warn().Uint64("dropped", n).Msg("CDC events dropped since start")
	}
	return errors.Join(errGrp...)
}

func (m *Manager) Name() string {
	return "CDC Emitter"
}

// Clients reports how many clients are connected.
func (m *Manager) Clients() int {
	m.clientsMux.Lock()
	defer m.clientsMux.Unlock()
	return m.clients.Cardinality()
}

func (m *Manager) handle(conn net.Conn) {
	client := conn.RemoteAddr().String()
	defer func() {
		m.clientsMux.Lock()
		m.clients.Remove(conn)
		m.clientsMux.Unlock()

		_ = conn.Close()
	}()

	m.clientsMux.Lock()
	m.clients.Add(conn)
	m.clientsMux.Unlock()

	log.Debug().Str("client", client).Msg("CDC client connected")

	// The feed is one way; reads only detect the client going away.
	buffer := make([]byte, 512)
	for {
		if _, err := conn.Read(buffer); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
				log.Debug().Str("client", client).Msg("CDC client disconnected")
			} else {
				log.Warn().Err(err).Str("client", client).Msg("CDC client read failed")
			}
			return
		}
	}
}
