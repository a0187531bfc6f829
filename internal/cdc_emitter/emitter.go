package cdc_emitter

import (
	"encoding/json"
	"github.com/litetable/litetable-sheet/internal/litetable"
	"github.com/litetable/litetable-sheet/internal/table"
	"github.com/rs/zerolog/log"
	"net"
	"time"
)

const writeTimeout = 100 * time.Millisecond

// event is the line written to every connected client for each applied update.
type event struct {
	Seq       uint64            `json:"seq"`
	Operation string            `json:"operation"`
	Version   litetable.Version `json:"version"`
	Update    table.Update      `json:"update"`
}

func newEvent(seq uint64, u table.Update) *event {
	return &event{
		Seq:       seq,
		Operation: u.Kind().String(),
		Version:   u.Version,
		Update:    u,
	}
}

// Emit queues an applied update for the connected clients. It never blocks the replica:
// when the queue is full the event is dropped and its sequence number is skipped.
func (m *Manager) Emit(u table.Update) {
	e := newEvent(m.seq.Add(1), u)
	select {
	case m.emitChan <- e:
	default:
		m.dropped.Add(1)
		log.Warn().Uint64("seq", e.Seq).Msg("CDC queue full, dropping event")
	}
}

// raiseCDCEvent writes the event to every client. Clients that cannot keep up are closed.
func (m *Manager) raiseCDCEvent(e *event) {
	data, err := json.Marshal(e)
	if err != nil {
		log.Error().Err(err).Uint64("seq", e.Seq).Msg("failed to marshal CDC event")
		return
	}
	line := append(data, '\n')

	m.clientsMux.Lock()
	defer m.clientsMux.Unlock()

	var failed []net.Conn
	m.clients.Each(func(client net.Conn) bool {
		_ = client.SetWriteDeadline(time.Now().Add(writeTimeout))
		if _, err := client.Write(line); err != nil {
			log.Debug().Err(err).Str("client", client.RemoteAddr().String()).Msg("dropping CDC client")
			failed = append(failed, client)
		}
		return false
	})

	for _, client := range failed {
		_ = client.Close()
		m.clients.Remove(client)
	}
}
