package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDedup_SeenGrowsOnly(t *testing.T) {
	t.Parallel()

	d := NewDedup()
	msg := Message{ID: 42, Channel: "fxnews", Text: "EUR rallies", Time: time.Now()}

	assert.False(t, d.Seen(msg))
	assert.True(t, d.Seen(msg), "redelivery of the same message must be suppressed")
	assert.True(t, d.Seen(msg))
	assert.Equal(t, 1, d.Len())
}

func TestDedup_KeyIncludesChannel(t *testing.T) {
	t.Parallel()

	d := NewDedup()

	// same numeric id from two channels are distinct messages
	assert.False(t, d.Seen(Message{ID: 7, Channel: "fxnews"}))
	assert.False(t, d.Seen(Message{ID: 7, Channel: "macro"}))
	assert.Equal(t, 2, d.Len())

	assert.Equal(t, "fxnews_7", Message{ID: 7, Channel: "fxnews"}.Key())
}
