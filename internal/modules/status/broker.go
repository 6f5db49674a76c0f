package status

import "sync"

// Broker fans status change events out to live feed subscribers. In the
// hosted setup this role belongs to the store's own change notifications;
// here the service publishes after each committed write.
type Broker struct {
	mu     sync.RWMutex
	nextID int64
	subs   map[int64]chan Event
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[int64]chan Event)}
}

// Subscribe returns a buffered event channel and an unsubscribe func.
func (b *Broker) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	ch := make(chan Event, 16)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers ev to every subscriber. Slow subscribers are skipped
// rather than blocked on; a missed upsert only delays the feed until its
// next timer re-derivation or reload.
func (b *Broker) Publish(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
