package dto

import (
	"time"

	"github.com/guttosm/dbostatement/internal/domain/models"
)

// StatementResponse represents the JSON structure returned by
// POST /api/v1/statements and GET /api/v1/statements/{id}.
//
// Amounts are rendered as fixed two-digit strings so no precision is lost in
// JSON numbers.
type StatementResponse struct {
	ID             string    `json:"id" example:"4f6d1c3e-9a51-4c0e-8d59-3c8a9f1d2b7e"`
	Filename       string    `json:"filename" example:"export_2024_01.csv"`
	RecordCount    int       `json:"record_count" example:"4"`
	ImportedAt     time.Time `json:"imported_at" example:"2024-01-19T08:00:00Z"`
	FirstOperation string    `json:"first_operation,omitempty" example:"2024-01-18T12:36:00"`
	LastOperation  string    `json:"last_operation,omitempty" example:"2024-01-24T12:43:00"`
	TotalDebit     string    `json:"total_debit" example:"0.00"`
	TotalCredit    string    `json:"total_credit" example:"24962.00"`
	TotalCoverage  string    `json:"total_coverage" example:"24962.00"`
}

// NewStatementResponse maps a stored summary to its API shape.
func NewStatementResponse(s models.StatementSummary) StatementResponse {
	resp := StatementResponse{
		ID:            s.ID.String(),
		Filename:      s.Filename,
		RecordCount:   s.RecordCount,
		ImportedAt:    s.ImportedAt.UTC(),
		TotalDebit:    s.TotalDebit.StringFixed(2),
		TotalCredit:   s.TotalCredit.StringFixed(2),
		TotalCoverage: s.TotalCoverage.StringFixed(2),
	}
	if s.FirstOperation != nil {
		resp.FirstOperation = s.FirstOperation.String()
	}
	if s.LastOperation != nil {
		resp.LastOperation = s.LastOperation.String()
	}
	return resp
}

// ParseErrorResponse is returned with 422 when a data row of an uploaded export
// fails to map.
type ParseErrorResponse struct {
	Row     int    `json:"row" example:"4"`
	Column  int    `json:"column" example:"5"`
	Field   string `json:"field" example:"operation date"`
	Message string `json:"message" example:"row 4: invalid operation date format [column 5]: expected format DD.MM.YYYY HH:MM:SS, the date was \"2024-01-18\""`
}
