/*
dto.go - Data Transfer Objects for API responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the
  internal domain model from the external contract.

DECIMAL ENCODING:
  Monetary fields serialize as decimal strings ("87.32"), never binary
  floats, so clients round-trip amounts exactly.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/warp/finance-ledger/ledger"
)

// ReportDTO is the financial report as returned to clients.
type ReportDTO struct {
	GrossRevenue decimal.Decimal `json:"gross_revenue"`
	Expenses     decimal.Decimal `json:"expenses"`
	NetRevenue   decimal.Decimal `json:"net_revenue"`
}

func toReportDTO(r ledger.Report) ReportDTO {
	return ReportDTO{
		GrossRevenue: r.GrossRevenue,
		Expenses:     r.Expenses,
		NetRevenue:   r.NetRevenue,
	}
}

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
