// Package stores holds the stateful owners of the core data model. Each store
// wraps one persisted record set, exposes a mutation API, and notifies
// subscribers after a committed change so outer layers can react without the
// stores knowing about them.
package stores

import (
	"encoding/json"
	"sync"

	"gorm.io/gorm"
)

// Event describes one committed store mutation.
type Event struct {
	Store  string `json:"store"`
	Action string `json:"action"`
	UserID string `json:"user_id"`
}

type notifier struct {
	mu   sync.RWMutex
	subs []func(Event)
}

// Subscribe registers a callback invoked after every committed mutation.
func (n *notifier) Subscribe(fn func(Event)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs = append(n.subs, fn)
}

func (n *notifier) publish(e Event) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, fn := range n.subs {
		fn(e)
	}
}

// publishTx delivers the event immediately, unless the transaction carries an
// event queue; then the event is held until the queue is flushed after commit.
// Subscribers never observe a mutation that is later rolled back.
func (n *notifier) publishTx(tx *gorm.DB, e Event) {
	if tx != nil {
		if v, ok := tx.Get(queueKey); ok {
			if q, ok := v.(*EventQueue); ok {
				q.add(func() { n.publish(e) })
				return
			}
		}
	}
	n.publish(e)
}

const queueKey = "stores:event_queue"

// EventQueue holds events raised inside a transaction until it commits.
type EventQueue struct {
	mu     sync.Mutex
	queued []func()
}

// QueueEvents attaches a fresh queue to the transaction. Store mutations made
// through the returned handle publish into the queue instead of directly.
func QueueEvents(tx *gorm.DB) (*gorm.DB, *EventQueue) {
	q := &EventQueue{}
	return tx.Set(queueKey, q), q
}

func (q *EventQueue) add(fn func()) {
	q.mu.Lock()
	q.queued = append(q.queued, fn)
	q.mu.Unlock()
}

// Flush delivers the held events in publish order. Call it once, after the
// transaction commits; a rolled-back transaction is simply never flushed.
func (q *EventQueue) Flush() {
	q.mu.Lock()
	queued := q.queued
	q.queued = nil
	q.mu.Unlock()
	for _, fn := range queued {
		fn()
	}
}

// mergeInto overlays a key-value patch onto a payload struct via its JSON
// form. Keys the struct does not know are dropped; no validation happens here,
// that belongs to the request layer.
func mergeInto[T any](current T, updates map[string]any) (T, error) {
	base := map[string]any{}
	blob, err := json.Marshal(current)
	if err != nil {
		return current, err
	}
	if err := json.Unmarshal(blob, &base); err != nil {
		return current, err
	}
	for k, v := range updates {
		base[k] = v
	}
	merged, err := json.Marshal(base)
	if err != nil {
		return current, err
	}
	out := current
	if err := json.Unmarshal(merged, &out); err != nil {
		return current, err
	}
	return out, nil
}
