package ledger_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/finance-ledger/ledger"
)

func TestNewIdentified_GeneratesFreshID(t *testing.T) {
	m := mv(day(2021, time.July, 12), "87.32", "first")

	a := ledger.NewIdentified(m)
	b := ledger.NewIdentified(m)

	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.NotEqual(t, a.ID, b.ID, "each wrap gets its own identity")
	assert.Equal(t, m, a.Data)
}

func TestIdentifyAll_PreservesOrderAndData(t *testing.T) {
	movements := []ledger.Movement{
		mv(day(2021, time.July, 12), "87.32", "first"),
		mv(day(2023, time.August, 20), "-12.13", "second"),
	}

	wrapped := ledger.IdentifyAll(movements)

	require.Len(t, wrapped, 2)
	seen := map[uuid.UUID]bool{}
	for i, w := range wrapped {
		assert.Equal(t, movements[i], w.Data)
		assert.False(t, seen[w.ID], "ids must be unique within a batch")
		seen[w.ID] = true
	}
}
