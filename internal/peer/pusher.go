// Package peer delivers the updates this replica produces to the other replicas of the sheet.
package peer

import (
	"context"
	"errors"
	"fmt"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/litetable/litetable-sheet/internal/server/grpc"
	"github.com/litetable/litetable-sheet/internal/table"
	"github.com/rs/zerolog/log"
	grpc2 "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"io"
	"sync"
	"time"
)

//go:generate mockgen -destination=pusher_mock.go -package=peer -source=pusher.go

const (
	defaultInterval = time.Second
	maxBatch        = 512
	pushTimeout     = 5 * time.Second
)

type pushClient interface {
	Push(ctx context.Context, in *grpc.PushRequest, opts ...grpc2.CallOption) (*grpc.PushResponse, error)
}

// DialFunc opens a client for the peer at addr. The returned closer is called on Stop.
type DialFunc func(addr string) (pushClient, io.Closer, error)

type Config struct {
	ReplicaID string
	Peers     []string
	// Interval between two flushes. Defaults to one second.
	Interval time.Duration
	Dial     DialFunc
}

func (c *Config) validate() error {
	var errGrp []error
	if c.ReplicaID == "" {
		errGrp = append(errGrp, errors.New("replica id required"))
	}
	if c.Interval < 0 {
		errGrp = append(errGrp, fmt.Errorf("invalid push interval: %v", c.Interval))
	}
	for _, p := range c.Peers {
		if p == "" {
			errGrp = append(errGrp, errors.New("peer address cannot be empty"))
		}
	}
	return errors.Join(errGrp...)
}

// Pusher queues the updates this replica originates and pushes them to every peer. A batch
// stays queued until the peer accepts it, so peers see each update at least once.
type Pusher struct {
	id       string
	interval time.Duration
	dial     DialFunc
	peers    mapset.Set[string]

	mu      sync.Mutex
	queues  map[string][]table.Update
	clients map[string]pushClient
	closers []io.Closer

	procCtx    context.Context
	procCancel context.CancelFunc
	done       chan struct{}
}

func New(cfg *Config) (*Pusher, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	interval := cfg.Interval
	if interval == 0 {
		interval = defaultInterval
	}
	dial := cfg.Dial
	if dial == nil {
		dial = dialGRPC
	}

	p := &Pusher{
		id:       cfg.ReplicaID,
		interval: interval,
		dial:     dial,
		peers:    mapset.NewSet[string](),
		queues:   make(map[string][]table.Update),
		clients:  make(map[string]pushClient),
		done:     make(chan struct{}),
	}
	for _, addr := range cfg.Peers {
		p.AddPeer(addr)
	}
	return p, nil
}

func dialGRPC(addr string) (pushClient, io.Closer, error) {
	conn, err := grpc2.NewClient(addr, grpc2.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create client for %s: %w", addr, err)
	}
	return grpc.NewReplicaClient(conn), conn, nil
}

// AddPeer starts replicating to addr. Updates emitted before the call are not sent to it.
func (p *Pusher) AddPeer(addr string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.peers.Add(addr) {
		return false
	}
	p.queues[addr] = nil
	return true
}

// Peers returns the addresses updates are pushed to.
func (p *Pusher) Peers() []string {
	return mapset.Sorted(p.peers)
}

// Pending reports how many updates wait to be pushed to addr.
func (p *Pusher) Pending(addr string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queues[addr])
}

// Emit queues u for every peer. Updates received from other replicas are skipped: their
// origin pushes them itself.
func (p *Pusher) Emit(u table.Update) {
	if u.Version.Origin != p.id {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for addr := range p.queues {
		p.queues[addr] = append(p.queues[addr], u)
	}
}

func (p *Pusher) Start() error {
	p.procCtx, p.procCancel = context.WithCancel(context.Background())

	go func() {
		defer close(p.done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-p.procCtx.Done():
				return
			case <-ticker.C:
				p.flush(p.procCtx)
			}
		}
	}()

	log.Info().Msgf("pushing updates to %d peers every %v", p.peers.Cardinality(), p.interval)
	return nil
}

func (p *Pusher) Stop() error {
	if p.procCancel != nil {
		p.procCancel()
		<-p.done
	}

	// one last attempt so a clean shutdown does not strand local edits
	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()
	p.flush(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	var errGrp []error
	for _, c := range p.closers {
		if err := c.Close(); err != nil {
			errGrp = append(errGrp, err)
		}
	}
	p.closers = nil
	p.clients = make(map[string]pushClient)
	return errors.Join(errGrp...)
}

func (p *Pusher) Name() string {
	return "Peer Pusher"
}

// flush pushes one batch to every peer with queued updates.
func (p *Pusher) flush(ctx context.Context) {
	for _, addr := range p.Peers() {
		if err := p.push(ctx, addr); err != nil {
			log.Warn().Err(err).Str("peer", addr).Msg("push failed, will retry")
		}
	}
}

func (p *Pusher) push(ctx context.Context, addr string) error {
	p.mu.Lock()
	queue := p.queues[addr]
	if len(queue) == 0 {
		p.mu.Unlock()
		return nil
	}
	batch := make([]table.Update, min(len(queue), maxBatch))
	copy(batch, queue)

	client, err := p.client(addr)
	p.mu.Unlock()
	if err != nil {
		return err
	}

	ctxTo, cancel := context.WithTimeout(ctx, pushTimeout)
	defer cancel()

	resp, err := client.Push(ctxTo, &grpc.PushRequest{Updates: batch})
	if err != nil {
		return err
	}

	// Emit only appends, so the batch is still the head of the queue.
	p.mu.Lock()
	p.queues[addr] = p.queues[addr][len(batch):]
	p.mu.Unlock()

	log.Debug().Str("peer", addr).Int("sent", len(batch)).Int("applied", resp.Applied).Msg("pushed updates")
	return nil
}

// client must be called with p.mu held.
func (p *Pusher) client(addr string) (pushClient, error) {
	if c, ok := p.clients[addr]; ok {
		return c, nil
	}

	c, closer, err := p.dial(addr)
	if err != nil {
		return nil, err
	}
	p.clients[addr] = c
	if closer != nil {
		p.closers = append(p.closers, closer)
	}
	return c, nil
}
