// Package memory provides an in-memory ledger.Store for tests and dev.
package memory

import (
	"context"
	"sync"

	"github.com/warp/finance-ledger/ledger"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Store keeps committed state in memory. Transactions buffer their writes
// and publish them on Commit, so a concurrent reader sees either all of a
// batch or none of it - the same visibility contract as the sqlite store.
type Store struct {
	mu        sync.RWMutex
	movements []ledger.Identified[ledger.Movement]
	fragments []ledger.Report

	failMovementInsert bool
	failReportInsert   bool
	failCommit         bool
}

func New() *Store {
	return &Store{}
}

// Begin opens a buffered transaction.
func (s *Store) Begin(_ context.Context) (ledger.Tx, error) {
	return &tx{store: s}, nil
}

// Movements returns the committed movements in insertion order.
func (s *Store) Movements() []ledger.Identified[ledger.Movement] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledger.Identified[ledger.Movement], len(s.movements))
	copy(out, s.movements)
	return out
}

// Fragments returns the committed report fragments in insertion order.
func (s *Store) Fragments() []ledger.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledger.Report, len(s.fragments))
	copy(out, s.fragments)
	return out
}

// =============================================================================
// FAULT INJECTION - Simulated storage faults for atomicity tests
// =============================================================================

// FailNextMovementInsert makes the next InsertMovements call fail.
func (s *Store) FailNextMovementInsert() { s.withLock(func() { s.failMovementInsert = true }) }

// FailNextReportInsert makes the next InsertReportFragment call fail.
func (s *Store) FailNextReportInsert() { s.withLock(func() { s.failReportInsert = true }) }

// FailNextCommit makes the next Commit call fail, discarding the batch.
func (s *Store) FailNextCommit() { s.withLock(func() { s.failCommit = true }) }

func (s *Store) withLock(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// =============================================================================
// TRANSACTION
// =============================================================================

type tx struct {
	store   *Store
	pending []ledger.Identified[ledger.Movement]
	deltas  []ledger.Report
	done    bool
}

var errInjected = &ledger.StorageError{Op: "injected fault", Err: ledger.ErrStorage}

func (t *tx) ReadReportFragments(_ context.Context) ([]ledger.Report, error) {
	if t.done {
		return nil, ledger.ErrTxDone
	}
	return t.store.Fragments(), nil
}

func (t *tx) InsertMovements(_ context.Context, movements []ledger.Identified[ledger.Movement]) error {
	if t.done {
		return ledger.ErrTxDone
	}
	t.store.mu.Lock()
	fail := t.store.failMovementInsert
	t.store.failMovementInsert = false
	t.store.mu.Unlock()
	if fail {
		return errInjected
	}
	t.pending = append(t.pending, movements...)
	return nil
}

func (t *tx) InsertReportFragment(_ context.Context, fragment ledger.Identified[ledger.Report]) error {
	if t.done {
		return ledger.ErrTxDone
	}
	t.store.mu.Lock()
	fail := t.store.failReportInsert
	t.store.failReportInsert = false
	t.store.mu.Unlock()
	if fail {
		return errInjected
	}
	t.deltas = append(t.deltas, fragment.Data)
	return nil
}

func (t *tx) Commit() error {
	if t.done {
		return ledger.ErrTxDone
	}
	t.done = true

	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if t.store.failCommit {
		t.store.failCommit = false
		return &ledger.StorageError{Op: "commit", Err: ledger.ErrStorage}
	}
	t.store.movements = append(t.store.movements, t.pending...)
	t.store.fragments = append(t.store.fragments, t.deltas...)
	return nil
}

func (t *tx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	t.pending = nil
	t.deltas = nil
	return nil
}
