package dbo

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/guttosm/dbostatement/internal/dbo/dbotest"
	"github.com/shopspring/decimal"
)

const exportHeader = dbotest.Header

var (
	exportRow     = dbotest.Row
	balanceExport = dbotest.BalanceExport
)

func cp1251(t *testing.T, s string) []byte {
	t.Helper()
	return dbotest.Encode(t, s)
}

func mustDateTime(t *testing.T, s string) civil.DateTime {
	t.Helper()
	dt, err := civil.ParseDateTime(s)
	if err != nil {
		t.Fatalf("parse datetime %q: %v", s, err)
	}
	return dt
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}
