/*
handlers.go - HTTP handlers for the ledger service

PURPOSE:
  Exposes the ledger engine via REST. Handles HTTP request/response and
  JSON serialization, and delegates everything else to ledger.Service.

ENDPOINTS:
  GET  /report        Fold all committed report fragments into the
                      all-time report
  POST /transactions  Decode the multipart "data" field as CSV and
                      commit the batch atomically

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Request-shape errors (missing "data" field, bad multipart)
  - 500: Storage faults

  The missing-field check happens before any store transaction opens;
  a malformed request never touches the database.

SEE ALSO:
  - dto.go: Response data structures
  - server.go: Router setup and middleware
  - ledger/service.go: Orchestration the handlers delegate to
*/
package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/warp/finance-ledger/ledger"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Service *ledger.Service
}

// NewHandler creates a handler delegating to the given service.
func NewHandler(service *ledger.Service) *Handler {
	return &Handler{Service: service}
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// GetReport returns the all-time financial report.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.Query(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to query report", err)
		return
	}
	writeJSON(w, http.StatusOK, toReportDTO(report))
}

// IngestTransactions decodes the multipart field named "data" as a CSV
// batch and commits it. The body is streamed; decoding suspends only at
// I/O boundaries.
func (h *Handler) IngestTransactions(w http.ResponseWriter, r *http.Request) {
	mr, err := r.MultipartReader()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Expected multipart form data", err)
		return
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			writeError(w, http.StatusBadRequest, "Failed to read multipart form", err)
			return
		}
		if part.FormName() != "data" {
			continue
		}

		report, err := h.Service.IngestCSV(r.Context(), part)
		if err != nil {
			status := http.StatusInternalServerError
			if ledger.IsClientError(err) {
				status = http.StatusBadRequest
			}
			writeError(w, status, "Failed to ingest transactions", err)
			return
		}
		writeJSON(w, http.StatusCreated, toReportDTO(report))
		return
	}

	// No "data" field: rejected without ever opening a transaction.
	writeError(w, http.StatusBadRequest, "Missing CSV field", ledger.ErrMissingDataField)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
