package models

import (
	"iter"
	"slices"

	"github.com/shopspring/decimal"
)

// Statement is the ordered result of parsing one DBO export.
//
// Records are always sorted ascending by operation date. The sort is stable,
// so records sharing an operation date keep the order they had in the file.
// A Statement is never modified after NewStatement returns.
type Statement struct {
	records []Record
}

// Totals sums the amount columns of a statement.
// Absent debit/credit values contribute nothing.
type Totals struct {
	Debit    decimal.Decimal
	Credit   decimal.Decimal
	Coverage decimal.Decimal
}

// NewStatement sorts a copy of records by operation date and wraps it.
// The caller keeps ownership of the input slice.
func NewStatement(records []Record) *Statement {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, CompareByOperationDate)
	return &Statement{records: sorted}
}

// All returns a read-only sequence over the records in ascending date order.
// The sequence can be ranged over any number of times.
func (s *Statement) All() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for _, r := range s.records {
			if !yield(r) {
				return
			}
		}
	}
}

// Len returns the number of records.
func (s *Statement) Len() int { return len(s.records) }

// IsEmpty reports whether the statement holds no records.
func (s *Statement) IsEmpty() bool { return len(s.records) == 0 }

// First returns the earliest record.
func (s *Statement) First() (Record, bool) {
	if s.IsEmpty() {
		return Record{}, false
	}
	return s.records[0], true
}

// Last returns the latest record.
func (s *Statement) Last() (Record, bool) {
	if s.IsEmpty() {
		return Record{}, false
	}
	return s.records[len(s.records)-1], true
}

// Totals returns the sums of debit, credit and coverage across all records.
func (s *Statement) Totals() Totals {
	var t Totals
	for _, r := range s.records {
		if r.Debit.Valid {
			t.Debit = t.Debit.Add(r.Debit.Decimal)
		}
		if r.Credit.Valid {
			t.Credit = t.Credit.Add(r.Credit.Decimal)
		}
		t.Coverage = t.Coverage.Add(r.Coverage)
	}
	return t
}

// Equivalent reports whether both statements hold the same number of records
// and every pair at the same position is Equivalent.
func (s *Statement) Equivalent(other *Statement) bool {
	if s == nil || other == nil {
		return s == other
	}
	return slices.EqualFunc(s.records, other.records, Record.Equivalent)
}
