// Package realtime pushes watch-list changes to websocket clients.
package realtime

import (
	"log/slog"

	"stock_watchlist/internal/feature/watchlist/domain/entity"
	"stock_watchlist/internal/feature/watchlist/domain/ordering"
	"stock_watchlist/internal/feature/watchlist/transport/http/dto"
	"stock_watchlist/internal/feature/watchlist/usecase"
	"stock_watchlist/internal/platform/ws"
)

// Message types sent to clients.
const (
	MessageState  = "state"
	MessageAlerts = "alerts"
)

// Publisher delivers an encoded message to every connected client.
type Publisher interface {
	Broadcast(msg []byte)
}

// StateSource provides the current snapshot and sort order.
type StateSource interface {
	State() entity.State
	CurrentOrder() (*ordering.Order, ordering.Direction)
}

// Broadcaster はストアの変更を "state" と "alerts" メッセージとして配信するリスナーです。
type Broadcaster struct {
	pub    Publisher
	source StateSource
}

var _ usecase.Listener = (*Broadcaster)(nil)

// NewBroadcaster creates a Broadcaster.
func NewBroadcaster(pub Publisher, source StateSource) *Broadcaster {
	return &Broadcaster{pub: pub, source: source}
}

// OnStateChange broadcasts the new state and its alert evaluation.
func (b *Broadcaster) OnStateChange(state entity.State) {
	for _, msg := range b.Messages(state) {
		b.pub.Broadcast(msg)
	}
}

// Welcome returns the messages describing the current state, for newly connected clients.
func (b *Broadcaster) Welcome() [][]byte {
	return b.Messages(b.source.State())
}

// Messages encodes state as a "state" message followed by an "alerts" message.
// Messages that fail to encode are skipped.
func (b *Broadcaster) Messages(state entity.State) [][]byte {
	order, direction := b.source.CurrentOrder()
	payloads := []struct {
		typ  string
		data any
	}{
		{MessageState, dto.NewStateResponse(state, order, direction)},
		{MessageAlerts, dto.NewAlertsResponse(usecase.EvaluateAlerts(state))},
	}

	out := make([][]byte, 0, len(payloads))
	for _, p := range payloads {
		msg, err := ws.Marshal(p.typ, p.data)
		if err != nil {
			slog.Error("failed to encode realtime message", "type", p.typ, "error", err)
			continue
		}
		out = append(out, msg)
	}
	return out
}
