package broker

import (
	"context"
	"sync"

	"go-stockcontrol-ws/internal/model"
)

type memoryBroker struct {
	mu   sync.Mutex
	subs map[string]map[int]chan model.Snapshot
	next int
}

// NewMemoryBroker is an in-process SyncBroker for single-instance deployments
// (no REDIS_ADDR configured) and for tests.
func NewMemoryBroker() SyncBroker {
	return &memoryBroker{subs: make(map[string]map[int]chan model.Snapshot)}
}

// Publish fans the snapshot out to every subscriber of the username. Sends
// happen under the lock so an unsubscribe cannot close a channel mid-send;
// a subscriber with a full buffer is skipped, matching the best-effort
// delivery of the Redis transport.
func (b *memoryBroker) Publish(_ context.Context, username string, snap model.Snapshot) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs[username] {
		select {
		case ch <- snap.Clone():
		default:
		}
	}
	return nil
}

func (b *memoryBroker) Subscribe(_ context.Context, username string) (<-chan model.Snapshot, func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs[username] == nil {
		b.subs[username] = make(map[int]chan model.Snapshot)
	}
	id := b.next
	b.next++
	ch := make(chan model.Snapshot, 16)
	b.subs[username][id] = ch

	stop := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[username][id]; ok {
			delete(b.subs[username], id)
			close(sub)
		}
	}
	return ch, stop, nil
}
