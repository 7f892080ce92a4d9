package models

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatementSummary describes an imported statement as stored.
//
// FirstOperation and LastOperation are nil when the statement has no records.
type StatementSummary struct {
	ID             uuid.UUID
	Filename       string
	RecordCount    int
	ImportedAt     time.Time
	FirstOperation *civil.DateTime
	LastOperation  *civil.DateTime
	TotalDebit     decimal.Decimal
	TotalCredit    decimal.Decimal
	TotalCoverage  decimal.Decimal
}

// SummarizeStatement builds the summary of a freshly parsed statement.
func SummarizeStatement(id uuid.UUID, filename string, importedAt time.Time, s *Statement) StatementSummary {
	totals := s.Totals()
	sum := StatementSummary{
		ID:            id,
		Filename:      filename,
		RecordCount:   s.Len(),
		ImportedAt:    importedAt,
		TotalDebit:    totals.Debit,
		TotalCredit:   totals.Credit,
		TotalCoverage: totals.Coverage,
	}
	if first, ok := s.First(); ok {
		d := first.OperationDate
		sum.FirstOperation = &d
	}
	if last, ok := s.Last(); ok {
		d := last.OperationDate
		sum.LastOperation = &d
	}
	return sum
}
