package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/newsfx/trader/sentiment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteJournal_WriteAndList(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "trades.sqlite")
	j, err := NewSQLite(path)
	require.NoError(t, err)
	defer j.Close()

	first := sampleTrade("t1")
	require.NoError(t, j.RecordTrade(first))

	second := sampleTrade("t2")
	second.Direction = sentiment.Short
	second.Profit = -3.10
	second.ClosedAt = first.ClosedAt.Add(time.Hour)
	require.NoError(t, j.RecordTrade(second))

	got, err := j.ListTrades()
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "t1", got[0].TradeID)
	assert.Equal(t, sentiment.Long, got[0].Direction)
	assert.InDelta(t, 12.40, got[0].Profit, 1e-9)
	assert.Equal(t, "t2", got[1].TradeID)
	assert.Equal(t, sentiment.Short, got[1].Direction)
	assert.True(t, got[0].OpenedAt.Equal(first.OpenedAt))
}

func TestSQLiteJournal_DuplicateIDFails(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "trades.sqlite")
	j, err := NewSQLite(path)
	require.NoError(t, err)
	defer j.Close()

	require.NoError(t, j.RecordTrade(sampleTrade("dup")))
	assert.Error(t, j.RecordTrade(sampleTrade("dup")))
}
