package grpc

import (
	"errors"
	"fmt"
	"github.com/litetable/litetable-sheet/internal/table"
	"github.com/rs/zerolog/log"
	"sync"
)

// subscriberBuffer is how many updates a subscriber may lag behind before it is dropped.
const subscriberBuffer = 1024

type subscriber struct {
	id      string
	updates chan table.Update
	dropped chan struct{}
}

// streams fans applied updates out to Subscribe calls.
type streams struct {
	mu          sync.Mutex
	subscribers map[string]*subscriber
	// closed is closed on shutdown; Subscribe calls return once it is.
	closed chan struct{}
}

var errShuttingDown = errors.New("server shutting down")

func newStreams() *streams {
	return &streams{
		subscribers: make(map[string]*subscriber),
		closed:      make(chan struct{}),
	}
}

func (s *streams) register(id string) (*subscriber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	select {
	case <-s.closed:
		return nil, errShuttingDown
	default:
	}
	if _, ok := s.subscribers[id]; ok {
		return nil, fmt.Errorf("subscriber %s already connected", id)
	}
	sub := &subscriber{
		id:      id,
		updates: make(chan table.Update, subscriberBuffer),
		dropped: make(chan struct{}),
	}
	s.subscribers[id] = sub
	return sub, nil
}

func (s *streams) unregister(sub *subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subscribers[sub.id] == sub {
		delete(s.subscribers, sub.id)
	}
}

// close ends every Subscribe call so a graceful stop does not wait on open streams.
func (s *streams) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	select {
	case <-s.closed:
	default:
		close(s.closed)
	}
	clear(s.subscribers)
}

func (s *streams) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers)
}

// Emit never blocks. A subscriber whose buffer is full is dropped and has to resubscribe.
func (s *streams) Emit(u table.Update) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sub := range s.subscribers {
		select {
		case sub.updates <- u:
		default:
			log.Warn().Str("client", id).Msg("dropping slow replica subscriber")
			close(sub.dropped)
			delete(s.subscribers, id)
		}
	}
}
