package feed

import (
	"context"
	"fmt"
	"time"
)

// Message is one text event from a news channel. Arrival order is not
// guaranteed; consumers deduplicate by Key.
type Message struct {
	ID      int64     `json:"id"`
	Channel string    `json:"channel"`
	Text    string    `json:"text"`
	Time    time.Time `json:"timestamp"`
}

// Key identifies the message across redeliveries from the same channel.
func (m Message) Key() string {
	return fmt.Sprintf("%s_%d", m.Channel, m.ID)
}

// Handler processes one deduplicated message.
type Handler func(ctx context.Context, msg Message) error

// Source delivers messages to a handler until ctx is canceled.
type Source interface {
	Run(ctx context.Context, h Handler) error
}

// Dedup tracks already-processed message keys. The set only grows; callers
// feeding an unbounded stream must bound its memory externally.
type Dedup struct {
	seen map[string]struct{}
}

func NewDedup() *Dedup {
	return &Dedup{seen: make(map[string]struct{})}
}

// Seen marks msg as processed and reports whether it had been seen before.
func (d *Dedup) Seen(msg Message) bool {
	key := msg.Key()
	if _, ok := d.seen[key]; ok {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}

// Len reports how many distinct messages have been observed.
func (d *Dedup) Len() int { return len(d.seen) }
