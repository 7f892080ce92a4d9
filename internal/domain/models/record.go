package models

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Record represents a single transaction line of a DBO bank export.
// Each field matches one column of the export, in file order.
//
// Column order:
//  1. PartyTaxID
//  2. PartyBankID
//  3. PartyAccount
//  4. Currency
//  5. OperationDate
//  6. OperationCode
//  7. CounterpartyBankID
//  8. PaymentProvider
//  9. CounterpartyAccount
//  10. CounterpartyTaxID
//  11. CounterpartyName
//  12. DocumentNumber
//  13. DocumentDate
//  14. Debit
//  15. Credit
//  16. PaymentPurpose
//  17. Coverage
//
// Records are values and are never mutated once built by the mapper.
type Record struct {
	PartyTaxID          string
	PartyBankID         string
	PartyAccount        string
	Currency            string
	OperationDate       civil.DateTime
	OperationCode       string
	CounterpartyBankID  string
	PaymentProvider     string
	CounterpartyAccount string
	CounterpartyTaxID   string
	CounterpartyName    string
	DocumentNumber      string
	DocumentDate        civil.Date
	Debit               decimal.NullDecimal // Valid=false when the column was empty
	Credit              decimal.NullDecimal // Valid=false when the column was empty
	PaymentPurpose      string
	Coverage            decimal.Decimal
}

// RecordKey is the part of a Record that identifies the economic event:
// when it happened and for how much.
type RecordKey struct {
	OperationDate civil.DateTime
	Coverage      decimal.Decimal
}

// NewRecordFromDateAndAmount builds a minimal record carrying only the
// operation date and the coverage amount. It is what the legacy extraction
// produces and what tests use to describe expected statements.
func NewRecordFromDateAndAmount(operationDate civil.DateTime, amount decimal.Decimal) Record {
	return Record{
		OperationDate: operationDate,
		Coverage:      amount,
	}
}

// Key returns the narrow identity of the record.
func (r Record) Key() RecordKey {
	return RecordKey{OperationDate: r.OperationDate, Coverage: r.Coverage}
}

// Equivalent reports whether r and other describe the same economic event.
// Only the operation date and the coverage amount are compared; amounts are
// compared numerically, so 3302.00 and 3302 match.
//
// This is intentionally narrower than structural equality: a record loaded
// through the full schema and one loaded through the legacy extraction are
// equivalent even though their descriptive fields differ.
func (r Record) Equivalent(other Record) bool {
	return r.OperationDate == other.OperationDate && r.Coverage.Equal(other.Coverage)
}

// CompareByOperationDate orders records solely by operation date.
// It returns -1, 0 or +1 and is suitable for slices.SortStableFunc.
func CompareByOperationDate(a, b Record) int {
	switch {
	case a.OperationDate.Before(b.OperationDate):
		return -1
	case a.OperationDate.After(b.OperationDate):
		return 1
	default:
		return 0
	}
}
