package repository

import (
	"context"
	"sync"

	"lotto/domain/events"
)

// txEventBuffer holds events published during a transaction and emits
// them on the bus only after the transaction commits. Rolled back work
// never produces observable events.
type txEventBuffer struct {
	mu      sync.Mutex
	bus     *events.Bus
	pending []events.Event
}

func newTxEventBuffer(bus *events.Bus) *txEventBuffer {
	return &txEventBuffer{bus: bus}
}

// Publish buffers an event until the transaction resolves
func (b *txEventBuffer) Publish(event events.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, event)
	return nil
}

// Flush emits all buffered events on the bus
func (b *txEventBuffer) Flush(ctx context.Context) {
	b.mu.Lock()
	pending := b.pending
	b.pending = nil
	b.mu.Unlock()

	if b.bus == nil {
		return
	}
	for _, event := range pending {
		b.bus.Emit(ctx, event)
	}
}

// Discard drops all buffered events
func (b *txEventBuffer) Discard() {
	b.mu.Lock()
	b.pending = nil
	b.mu.Unlock()
}
