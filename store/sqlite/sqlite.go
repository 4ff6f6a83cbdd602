/*
Package sqlite provides the SQLite-backed implementation of the ledger store.

PURPOSE:
  Implements ledger.Store and ledger.Tx on database/sql with the
  go-sqlite3 driver. In production the same patterns apply to
  PostgreSQL - only minor SQL dialect differences.

TABLES:
  movements:        append-only log of signed movements
                    (id, date, amount, memo)
  report_fragments: append-only log of report deltas
                    (id, gross_revenue, expenses)

  net_revenue is NOT stored; it is derived on read from gross revenue
  and expenses, so a fragment row can never carry a stale invariant.

DECIMAL ENCODING:
  Amounts are stored as TEXT via decimal.Decimal.String(). The ledger
  invariant (net == gross - expenses) must hold bit-exactly after a
  write/read round trip, which rules out REAL columns.

TRANSACTIONS:
  Each ledger.Tx wraps one *sql.Tx for its entire lifetime. Commit and
  Rollback consume the handle; any later call returns ledger.ErrTxDone,
  mirroring database/sql semantics. Isolation comes from SQLite itself:
  a concurrent reader sees either all of a committed batch or none of it.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so readers don't
  block on the single writer.

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - ledger/store.go: Interface definitions and ownership contract
  - store/memory: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/finance-ledger/ledger"
)

// Store implements ledger.Store on SQLite.
type Store struct {
	db *sql.DB
}

// New opens (creating if necessary) the database at dbPath and migrates
// the schema. Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Each pooled connection to ":memory:" would get its own private
	// database, so in-memory mode must stay on a single connection.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Movements (append-only)
	CREATE TABLE IF NOT EXISTS movements (
		id     TEXT PRIMARY KEY,
		date   TEXT NOT NULL,
		amount TEXT NOT NULL,
		memo   TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_movements_date
		ON movements(date);

	-- Report fragments (append-only; net_revenue is derived, not stored)
	CREATE TABLE IF NOT EXISTS report_fragments (
		id            TEXT PRIMARY KEY,
		gross_revenue TEXT NOT NULL,
		expenses      TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Begin opens a new ledger transaction.
func (s *Store) Begin(ctx context.Context) (ledger.Tx, error) {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, &ledger.StorageError{Op: "begin transaction", Err: err}
	}
	return &Tx{tx: sqlTx}, nil
}

// =============================================================================
// TRANSACTION
// =============================================================================

// Tx implements ledger.Tx over one *sql.Tx.
type Tx struct {
	tx   *sql.Tx
	done bool // set by Commit and Rollback; guards handle reuse
}

// ReadReportFragments returns every committed report delta, oldest first.
func (t *Tx) ReadReportFragments(ctx context.Context) ([]ledger.Report, error) {
	if t.done {
		return nil, ledger.ErrTxDone
	}

	rows, err := t.tx.QueryContext(ctx,
		`SELECT gross_revenue, expenses FROM report_fragments ORDER BY rowid ASC`)
	if err != nil {
		return nil, &ledger.StorageError{Op: "read report fragments", Err: err}
	}
	defer rows.Close()

	var fragments []ledger.Report
	for rows.Next() {
		var gross, expenses string
		if err := rows.Scan(&gross, &expenses); err != nil {
			return nil, &ledger.StorageError{Op: "scan report fragment", Err: err}
		}
		fragment, err := fragmentFromColumns(gross, expenses)
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, fragment)
	}
	if err := rows.Err(); err != nil {
		return nil, &ledger.StorageError{Op: "read report fragments", Err: err}
	}
	return fragments, nil
}

// InsertMovements appends each movement as a new row. Under the enclosing
// sql.Tx no partial insert survives a rollback.
func (t *Tx) InsertMovements(ctx context.Context, movements []ledger.Identified[ledger.Movement]) error {
	if t.done {
		return ledger.ErrTxDone
	}
	if len(movements) == 0 {
		return nil
	}

	stmt, err := t.tx.PrepareContext(ctx,
		`INSERT INTO movements (id, date, amount, memo) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return &ledger.StorageError{Op: "insert movements", Err: err}
	}
	defer stmt.Close()

	for _, m := range movements {
		_, err := stmt.ExecContext(ctx,
			m.ID.String(),
			m.Data.Date.Format(ledger.DateLayout),
			m.Data.Amount.String(),
			m.Data.Memo,
		)
		if err != nil {
			return &ledger.StorageError{Op: "insert movements", Err: err}
		}
	}
	return nil
}

// InsertReportFragment appends one report delta row.
func (t *Tx) InsertReportFragment(ctx context.Context, fragment ledger.Identified[ledger.Report]) error {
	if t.done {
		return ledger.ErrTxDone
	}

	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO report_fragments (id, gross_revenue, expenses) VALUES (?, ?, ?)`,
		fragment.ID.String(),
		fragment.Data.GrossRevenue.String(),
		fragment.Data.Expenses.String(),
	)
	if err != nil {
		return &ledger.StorageError{Op: "insert report fragment", Err: err}
	}
	return nil
}

// Commit makes all writes durable and consumes the handle.
func (t *Tx) Commit() error {
	if t.done {
		return ledger.ErrTxDone
	}
	t.done = true
	if err := t.tx.Commit(); err != nil {
		return &ledger.StorageError{Op: "commit", Err: err}
	}
	return nil
}

// Rollback discards all writes. After Commit it is a no-op returning nil,
// so callers can unconditionally defer it.
func (t *Tx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	if err := t.tx.Rollback(); err != nil {
		return &ledger.StorageError{Op: "rollback", Err: err}
	}
	return nil
}

// =============================================================================
// QUERIES OUTSIDE THE TRANSACTION BOUNDARY (admin/debugging)
// =============================================================================

// MovementRow is one stored movement as read back from the database.
type MovementRow struct {
	ID     string
	Date   time.Time
	Amount decimal.Decimal
	Memo   string
}

// Movements returns all stored movements, oldest insert first.
func (s *Store) Movements(ctx context.Context) ([]MovementRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, amount, memo FROM movements ORDER BY rowid ASC`)
	if err != nil {
		return nil, &ledger.StorageError{Op: "read movements", Err: err}
	}
	defer rows.Close()

	var movements []MovementRow
	for rows.Next() {
		var m MovementRow
		var date, amount string
		if err := rows.Scan(&m.ID, &date, &amount, &m.Memo); err != nil {
			return nil, &ledger.StorageError{Op: "scan movement", Err: err}
		}
		if m.Date, err = time.Parse(ledger.DateLayout, date); err != nil {
			return nil, &ledger.StorageError{Op: "decode movement date", Err: err}
		}
		if m.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, &ledger.StorageError{Op: "decode movement amount", Err: err}
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}

func fragmentFromColumns(gross, expenses string) (ledger.Report, error) {
	g, err := decimal.NewFromString(gross)
	if err != nil {
		return ledger.Report{}, &ledger.StorageError{Op: "decode gross revenue", Err: err}
	}
	e, err := decimal.NewFromString(expenses)
	if err != nil {
		return ledger.Report{}, &ledger.StorageError{Op: "decode expenses", Err: err}
	}
	return ledger.Report{GrossRevenue: g, Expenses: e, NetRevenue: g.Sub(e)}, nil
}
