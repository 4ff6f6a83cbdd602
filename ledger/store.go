/*
store.go - Transactional persistence boundary

PURPOSE:
  Defines the interface between the ledger service and the database.
  The store is an append-only log: movements and report fragments are
  only ever inserted, never updated or deleted. The all-time report is
  derived by folding the fragments, not read from a mutable row.

TRANSACTION CONTRACT:
  Store.Begin opens a Tx. Exactly one in-flight operation owns a Tx
  from open to terminal state, and terminates it exactly once:

    tx, err := store.Begin(ctx)
    if err != nil { ... }
    defer tx.Rollback() // rollback on every exit path without commit

    ... writes ...

    return tx.Commit()

  Commit consumes the handle: after Commit (or Rollback) every further
  call on the Tx returns ErrTxDone. Rollback after Commit is a no-op
  returning nil, so the deferred call above is always safe - the same
  contract as database/sql.

ISOLATION:
  Writes performed through a Tx become visible to other transactions
  only at Commit, all at once. A concurrent reader never observes part
  of a batch.

IMPLEMENTATIONS:
  - store/sqlite: production persistence
  - store/memory: in-memory, for tests and dev

SEE ALSO:
  - service.go: The only code that opens and terminates transactions
*/
package ledger

import "context"

// Store opens ledger transactions.
type Store interface {
	// Begin opens a new transaction. The caller owns the returned handle
	// and must terminate it exactly once via Commit or Rollback.
	Begin(ctx context.Context) (Tx, error)
}

// Tx is one atomic unit of work against the store.
// Not safe for concurrent use; a Tx is never shared across tasks.
type Tx interface {
	// ReadReportFragments returns every previously committed report delta,
	// with net revenue derived from gross revenue and expenses.
	ReadReportFragments(ctx context.Context) ([]Report, error)

	// InsertMovements appends each movement as a new row. If any single
	// insert fails, the error aborts the batch; no partial insert survives
	// the enclosing rollback.
	InsertMovements(ctx context.Context, movements []Identified[Movement]) error

	// InsertReportFragment appends one report delta row. Only gross revenue
	// and expenses are stored; net revenue is derived on read.
	InsertReportFragment(ctx context.Context, fragment Identified[Report]) error

	// Commit makes all writes durable and visible, then consumes the handle.
	Commit() error

	// Rollback discards all writes. After Commit it is a no-op returning nil.
	Rollback() error
}
