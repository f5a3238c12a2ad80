package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "JournalEntry", uuid.New())}
}

type recordingHandler struct {
	types []string
	err   error
	mu    sync.Mutex
	seen  []string
}

func (h *recordingHandler) Handle(_ context.Context, ev shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seen = append(h.seen, ev.EventType())
	return h.err
}

func (h *recordingHandler) EventTypes() []string { return h.types }

func (h *recordingHandler) handled() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.seen...)
}

func TestInMemoryEventBus_RoutesByType(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	posted := &recordingHandler{types: []string{"JournalEntryPosted"}}
	all := &recordingHandler{}
	bus.Subscribe(posted)
	bus.Subscribe(all)

	require.NoError(t, bus.Publish(context.Background(),
		newTestEvent("JournalEntryPosted"),
		newTestEvent("JournalEntryReversed"),
	))

	assert.Equal(t, []string{"JournalEntryPosted"}, posted.handled())
	assert.Equal(t, []string{"JournalEntryPosted", "JournalEntryReversed"}, all.handled())
}

func TestInMemoryEventBus_ExplicitTypesOverrideHandler(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	h := &recordingHandler{types: []string{"A"}}
	bus.Subscribe(h, "B")

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("A"), newTestEvent("B")))
	assert.Equal(t, []string{"B"}, h.handled())
}

func TestInMemoryEventBus_FailuresDoNotStopDelivery(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	failing := &recordingHandler{types: []string{"A"}, err: errors.New("boom")}
	panicking := &HandlerFunc{Types: []string{"A"}, Fn: func(context.Context, shared.DomainEvent) error {
		panic("handler bug")
	}}
	ok := &recordingHandler{types: []string{"A"}}
	bus.Subscribe(failing)
	bus.Subscribe(panicking)
	bus.Subscribe(ok)

	err := bus.Publish(context.Background(), newTestEvent("A"))

	assert.NoError(t, err)
	assert.Len(t, ok.handled(), 1)
	delivered, failed := bus.Stats()
	assert.Equal(t, int64(1), delivered)
	assert.Equal(t, int64(2), failed)
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	h := &recordingHandler{types: []string{"A", "B"}}
	bus.Subscribe(h)
	bus.Unsubscribe(h)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("A")))
	assert.Empty(t, h.handled())
	assert.Equal(t, 0, bus.registry.Count())
}

func TestInMemoryEventBus_StopDropsEvents(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	h := &recordingHandler{}
	bus.Subscribe(h)
	ctx := context.Background()

	require.NoError(t, bus.Stop(ctx))
	require.NoError(t, bus.Publish(ctx, newTestEvent("A")))
	assert.Empty(t, h.handled())

	require.NoError(t, bus.Start(ctx))
	require.NoError(t, bus.Publish(ctx, newTestEvent("A")))
	assert.Len(t, h.handled(), 1)
}

func TestHandlerRegistry_CountsDistinctHandlers(t *testing.T) {
	r := NewHandlerRegistry()
	h := &recordingHandler{}
	r.Register(h, "A", "B")
	r.Register(h)

	assert.Equal(t, 1, r.Count())
	assert.Len(t, r.Handlers("A"), 2)
	assert.Len(t, r.Handlers("C"), 1)
}
