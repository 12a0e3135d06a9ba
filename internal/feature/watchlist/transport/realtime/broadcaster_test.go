package realtime

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_watchlist/internal/feature/watchlist/domain/entity"
	"stock_watchlist/internal/feature/watchlist/domain/ordering"
	"stock_watchlist/internal/feature/watchlist/usecase"
)

type recordingPublisher struct {
	mu   sync.Mutex
	msgs [][]byte
}

func (p *recordingPublisher) Broadcast(msg []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
}

type staticSource struct {
	state entity.State
	order *ordering.Order
	dir   ordering.Direction
}

func (s staticSource) State() entity.State { return s.state }

func (s staticSource) CurrentOrder() (*ordering.Order, ordering.Direction) { return s.order, s.dir }

type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func decode(t *testing.T, msg []byte) envelope {
	t.Helper()
	var e envelope
	require.NoError(t, json.Unmarshal(msg, &e))
	return e
}

func TestBroadcaster_OnStateChange(t *testing.T) {
	t.Parallel()

	pub := &recordingPublisher{}
	b := NewBroadcaster(pub, staticSource{order: ordering.BySymbol})

	state := entity.NewState()
	state.TrackedStocks = entity.Ready([]entity.Stock{{Symbol: "AAPL", Bid: 2, Open: 1, AlertThresholdPercent: 100}})
	b.OnStateChange(state)

	require.Len(t, pub.msgs, 2)

	first := decode(t, pub.msgs[0])
	assert.Equal(t, MessageState, first.Type)
	assert.Contains(t, string(first.Data), `"symbol":"AAPL"`)
	assert.Contains(t, string(first.Data), `"order":{"name":"symbol","direction":"asc"}`)

	second := decode(t, pub.msgs[1])
	assert.Equal(t, MessageAlerts, second.Type)
	assert.Contains(t, string(second.Data), `"kind":"breached"`)
	assert.Contains(t, string(second.Data), `"percentMovement":"100.00"`)
}

func TestBroadcaster_PendingState(t *testing.T) {
	t.Parallel()

	pub := &recordingPublisher{}
	b := NewBroadcaster(pub, staticSource{})
	b.OnStateChange(entity.NewState())

	require.Len(t, pub.msgs, 2)
	assert.JSONEq(t, `{"status":"pending"}`, string(decode(t, pub.msgs[1]).Data))
}

func TestBroadcaster_Welcome(t *testing.T) {
	t.Parallel()

	state := entity.NewState()
	state.AvailableSymbols = entity.Ready([]string{"MSFT"})
	b := NewBroadcaster(&recordingPublisher{}, staticSource{state: state})

	msgs := b.Welcome()
	require.Len(t, msgs, 2)
	assert.Contains(t, string(decode(t, msgs[0]).Data), `"availableSymbols":{"status":"ready","value":["MSFT"]}`)
}

func TestBroadcaster_AsStoreListener(t *testing.T) {
	t.Parallel()

	store := usecase.NewStore(nil)
	pub := &recordingPublisher{}
	require.NoError(t, store.RegisterListener(NewBroadcaster(pub, staticSource{})))

	store.ReplaceTrackedStocks(entity.Ready([]entity.Stock{}))

	require.Len(t, pub.msgs, 2)
	assert.Contains(t, string(decode(t, pub.msgs[1]).Data), `"kind":"no_stocks"`)
}
