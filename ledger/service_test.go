package ledger_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/finance-ledger/ledger"
	"github.com/warp/finance-ledger/store/memory"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestService() (*ledger.Service, *memory.Store) {
	store := memory.New()
	return ledger.NewService(store, nil), store
}

const validCSV = "2021-07-12, Income, 87.32, first\n2023-08-20, Expense, 12.13, second"

// =============================================================================
// INGEST TESTS
// =============================================================================

func TestService_IngestCSV_CommitsMovementsAndFragment(t *testing.T) {
	// GIVEN: An empty store
	svc, store := newTestService()

	// WHEN: Ingesting a valid batch
	batch, err := svc.IngestCSV(context.Background(), strings.NewReader(validCSV))
	require.NoError(t, err)

	// THEN: The batch report is returned
	assert.True(t, batch.Equal(report("87.32", "12.13", "75.19")), "got %+v", batch)

	// AND: Both movements and exactly one fragment are committed
	movements := store.Movements()
	require.Len(t, movements, 2)
	assert.True(t, movements[0].Data.Amount.Equal(dec("87.32")))
	assert.True(t, movements[1].Data.Amount.Equal(dec("-12.13")))

	fragments := store.Fragments()
	require.Len(t, fragments, 1)
	assert.True(t, fragments[0].Equal(batch))
}

func TestService_IngestCSV_EmptyBatchInsertsZeroFragment(t *testing.T) {
	// GIVEN: A CSV whose every row is invalid
	svc, store := newTestService()

	// WHEN: Ingesting it
	batch, err := svc.IngestCSV(context.Background(), strings.NewReader("junk\n# comment"))
	require.NoError(t, err, "a batch with zero valid movements is not an error")

	// THEN: No movements, but the all-zero fragment is still inserted
	assert.True(t, batch.Equal(ledger.ZeroReport()))
	assert.Empty(t, store.Movements())
	require.Len(t, store.Fragments(), 1)
	assert.True(t, store.Fragments()[0].Equal(ledger.ZeroReport()))
}

func TestService_IngestCSV_FaultDuringFragmentInsert_NothingVisible(t *testing.T) {
	// GIVEN: The store will fail the report-fragment insert
	svc, store := newTestService()
	store.FailNextReportInsert()

	// WHEN: Ingesting a batch
	_, err := svc.IngestCSV(context.Background(), strings.NewReader(validCSV))

	// THEN: The fault surfaces as a storage error
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrStorage)

	// AND: No movement from the batch is visible to a subsequent query
	assert.Empty(t, store.Movements())
	assert.Empty(t, store.Fragments())

	total, err := svc.Query(context.Background())
	require.NoError(t, err)
	assert.True(t, total.Equal(ledger.ZeroReport()))
}

func TestService_IngestCSV_FaultDuringMovementInsert_Aborts(t *testing.T) {
	svc, store := newTestService()
	store.FailNextMovementInsert()

	_, err := svc.IngestCSV(context.Background(), strings.NewReader(validCSV))

	assert.ErrorIs(t, err, ledger.ErrStorage)
	assert.Empty(t, store.Movements())
	assert.Empty(t, store.Fragments())
}

func TestService_IngestCSV_FaultDuringCommit_Aborts(t *testing.T) {
	svc, store := newTestService()
	store.FailNextCommit()

	_, err := svc.IngestCSV(context.Background(), strings.NewReader(validCSV))

	assert.ErrorIs(t, err, ledger.ErrStorage)
	assert.Empty(t, store.Movements())
	assert.Empty(t, store.Fragments())
}

// =============================================================================
// QUERY TESTS
// =============================================================================

func TestService_Query_EmptyStoreIsZeroReport(t *testing.T) {
	svc, _ := newTestService()

	total, err := svc.Query(context.Background())
	require.NoError(t, err)

	assert.True(t, total.Equal(ledger.ZeroReport()), "got %+v", total)
}

func TestService_Query_FoldsAllFragments(t *testing.T) {
	// GIVEN: Two committed batches
	svc, _ := newTestService()
	_, err := svc.IngestCSV(context.Background(), strings.NewReader(validCSV))
	require.NoError(t, err)
	_, err = svc.IngestCSV(context.Background(),
		strings.NewReader("2024-01-02, Income, 10.01, a\n2024-01-03, Expense, 2.05, b"))
	require.NoError(t, err)

	// WHEN: Querying the total
	total, err := svc.Query(context.Background())
	require.NoError(t, err)

	// THEN: The fragments merge into the all-time report
	assert.True(t, total.Equal(report("97.33", "14.18", "83.15")), "got %+v", total)
}
