package dbo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/guttosm/dbostatement/internal/domain/models"
)

// Kind selects how a raw field is parsed.
type Kind int

const (
	KindText          Kind = iota // kept verbatim
	KindOperationDate             // DD.MM.YYYY HH:MM:SS
	KindDocumentDate              // DD.MM.YYYY
	KindDecimal                   // plain decimal, '.' separator
)

const (
	operationDateLayout = "02.01.2006 15:04:05"
	documentDateLayout  = "02.01.2006"

	OperationDateFormat = "DD.MM.YYYY HH:MM:SS"
	DocumentDateFormat  = "DD.MM.YYYY"
)

var errFractionalSeconds = errors.New("fractional seconds")

// Column describes one logical field of an export row.
//
// Optional only affects decimals: an empty optional decimal maps to an absent
// value instead of failing. A column beyond the end of the row always fails.
type Column struct {
	Index    int    // 0-based position in the row
	Name     string // used in diagnostics, e.g. "operation date"
	Kind     Kind
	Optional bool

	set func(*models.Record, value)
}

// Schema is the ordered list of columns a row is mapped through.
// Columns are checked in slice order and mapping stops at the first failure.
type Schema []Column

type value struct {
	text     string
	dateTime civil.DateTime
	date     civil.Date
	decimal  decimal.NullDecimal
}

// DefaultSchema is the full 17-column DBO layout. Exports usually terminate
// each row with a delimiter, which yields an 18th empty field; it is ignored.
var DefaultSchema = Schema{
	{Index: 0, Name: "party tax id", Kind: KindText, set: func(r *models.Record, v value) { r.PartyTaxID = v.text }},
	{Index: 1, Name: "party bank id", Kind: KindText, set: func(r *models.Record, v value) { r.PartyBankID = v.text }},
	{Index: 2, Name: "party account", Kind: KindText, set: func(r *models.Record, v value) { r.PartyAccount = v.text }},
	{Index: 3, Name: "currency", Kind: KindText, set: func(r *models.Record, v value) { r.Currency = v.text }},
	{Index: 4, Name: "operation date", Kind: KindOperationDate, set: func(r *models.Record, v value) { r.OperationDate = v.dateTime }},
	{Index: 5, Name: "operation code", Kind: KindText, set: func(r *models.Record, v value) { r.OperationCode = v.text }},
	{Index: 6, Name: "counterparty bank id", Kind: KindText, set: func(r *models.Record, v value) { r.CounterpartyBankID = v.text }},
	{Index: 7, Name: "payment provider", Kind: KindText, set: func(r *models.Record, v value) { r.PaymentProvider = v.text }},
	{Index: 8, Name: "counterparty account", Kind: KindText, set: func(r *models.Record, v value) { r.CounterpartyAccount = v.text }},
	{Index: 9, Name: "counterparty tax id", Kind: KindText, set: func(r *models.Record, v value) { r.CounterpartyTaxID = v.text }},
	{Index: 10, Name: "counterparty name", Kind: KindText, set: func(r *models.Record, v value) { r.CounterpartyName = v.text }},
	{Index: 11, Name: "document number", Kind: KindText, set: func(r *models.Record, v value) { r.DocumentNumber = v.text }},
	{Index: 12, Name: "document date", Kind: KindDocumentDate, set: func(r *models.Record, v value) { r.DocumentDate = v.date }},
	{Index: 13, Name: "debit", Kind: KindDecimal, Optional: true, set: func(r *models.Record, v value) { r.Debit = v.decimal }},
	{Index: 14, Name: "credit", Kind: KindDecimal, Optional: true, set: func(r *models.Record, v value) { r.Credit = v.decimal }},
	{Index: 15, Name: "payment purpose", Kind: KindText, set: func(r *models.Record, v value) { r.PaymentPurpose = v.text }},
	{Index: 16, Name: "coverage", Kind: KindDecimal, set: func(r *models.Record, v value) { r.Coverage = v.decimal.Decimal }},
}

// LegacySchema is the older minimal extraction: operation date, the credited
// amount (stored as coverage) and the payment purpose as a comment.
var LegacySchema = Schema{
	{Index: 4, Name: "operation date", Kind: KindOperationDate, set: func(r *models.Record, v value) { r.OperationDate = v.dateTime }},
	{Index: 14, Name: "amount", Kind: KindDecimal, set: func(r *models.Record, v value) { r.Coverage = v.decimal.Decimal }},
	{Index: 15, Name: "comment", Kind: KindText, set: func(r *models.Record, v value) { r.PaymentPurpose = v.text }},
}

// Map converts one tokenized row into a record, or returns a *RowError for
// the first column that is missing or does not parse.
func (s Schema) Map(row Row) (models.Record, error) {
	var rec models.Record
	for _, c := range s {
		if c.Index >= len(row.Fields) {
			return models.Record{}, &RowError{
				Row:    row.Number,
				Column: c.Index + 1,
				Field:  c.Name,
				Kind:   ErrMissingField,
				Msg:    fmt.Sprintf("%s not found [column %d]: the row has %d fields", c.Name, c.Index+1, len(row.Fields)),
			}
		}

		raw := row.Fields[c.Index]
		v, err := c.parse(raw)
		if err != nil {
			return models.Record{}, c.invalid(row.Number, raw)
		}
		if c.set != nil {
			c.set(&rec, v)
		}
	}
	return rec, nil
}

// MapRow maps a row through DefaultSchema.
func MapRow(row Row) (models.Record, error) {
	return DefaultSchema.Map(row)
}

func (c Column) parse(raw string) (value, error) {
	switch c.Kind {
	case KindOperationDate:
		t, err := time.Parse(operationDateLayout, raw)
		if err != nil {
			return value{}, err
		}
		// time.Parse accepts a fractional second the layout does not name.
		if strings.LastIndexByte(raw, ':') != len(raw)-3 {
			return value{}, errFractionalSeconds
		}
		return value{dateTime: civil.DateTimeOf(t)}, nil
	case KindDocumentDate:
		t, err := time.Parse(documentDateLayout, raw)
		if err != nil {
			return value{}, err
		}
		return value{date: civil.DateOf(t)}, nil
	case KindDecimal:
		if raw == "" && c.Optional {
			return value{}, nil
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return value{}, err
		}
		return value{decimal: decimal.NullDecimal{Decimal: d, Valid: true}}, nil
	default:
		return value{text: raw}, nil
	}
}

func (c Column) invalid(row int, raw string) *RowError {
	e := &RowError{Row: row, Column: c.Index + 1, Field: c.Name, Value: raw}
	switch c.Kind {
	case KindOperationDate, KindDocumentDate:
		format := OperationDateFormat
		if c.Kind == KindDocumentDate {
			format = DocumentDateFormat
		}
		e.Kind = ErrInvalidDate
		e.Msg = fmt.Sprintf("invalid %s format [column %d]: expected format %s, the date was %q", c.Name, e.Column, format, raw)
	default:
		e.Kind = ErrInvalidDecimal
		e.Msg = fmt.Sprintf("invalid %s [column %d]: expected a decimal number, the value was %q", c.Name, e.Column, raw)
	}
	return e
}
