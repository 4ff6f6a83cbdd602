/*
service.go - Ingest and query orchestration

PURPOSE:
  Wires decoder, aggregator, identity wrapper, and store together.
  Each entry point owns exactly one transaction from open to terminal
  state:

  Ingest: decode -> fold batch report -> stamp identities ->
          insert movements -> insert report fragment -> commit
  Query:  read all report fragments -> fold into the total

FAILURE MODEL:
  Any storage fault aborts the transaction via the deferred rollback;
  either the whole batch (movements plus its report fragment) becomes
  visible or none of it does. Decoding failures never surface here -
  the decoder drops bad rows internally. There is no retry policy: a
  store-level conflict is returned to the caller rather than silently
  retried, so a financial batch can never be double-applied.

SEE ALSO:
  - decoder.go: Row-level fault tolerance
  - store.go: Transaction ownership contract
*/
package ledger

import (
	"context"
	"io"
)

// Service orchestrates ledger ingestion and report queries.
type Service struct {
	store Store
	log   Logger
}

// NewService creates a service over the given store. log may be nil,
// which silences row-level decoder warnings.
func NewService(store Store, log Logger) *Service {
	return &Service{store: store, log: log}
}

// Query folds every committed report fragment into the all-time report.
// Read-only; never mutates the store.
func (s *Service) Query(ctx context.Context) (Report, error) {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return Report{}, err
	}
	defer tx.Rollback()

	fragments, err := tx.ReadReportFragments(ctx)
	if err != nil {
		return Report{}, err
	}
	return TotalOf(fragments), nil
}

// IngestCSV decodes one CSV batch and commits its movements together
// with the report fragment that summarizes them, atomically. The batch
// report is returned on success.
//
// A batch that decodes to zero valid movements is not an error: the
// all-zero fragment is still inserted.
func (s *Service) IngestCSV(ctx context.Context, csv io.Reader) (Report, error) {
	movements := NewDecoder(csv, s.log).DecodeAll()
	batch := ReportOf(movements)

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return Report{}, err
	}
	defer tx.Rollback()

	if err := tx.InsertMovements(ctx, IdentifyAll(movements)); err != nil {
		return Report{}, err
	}
	if err := tx.InsertReportFragment(ctx, NewIdentified(batch)); err != nil {
		return Report{}, err
	}
	if err := tx.Commit(); err != nil {
		return Report{}, err
	}
	return batch, nil
}
