// Package dbotest builds DBO export fixtures for tests in other packages.
package dbotest

import (
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

// Header is the header row of a DBO export, trailing delimiter included.
const Header = "ИНН;БИК;Счет;Валюта;Дата операции;Код операции;БИК банка контрагента;Банк контрагента;" +
	"Счет контрагента;ИНН контрагента;Контрагент;Номер документа;Дата документа;Дебет;Кредит;Назначение платежа;Покрытие;\r\n"

// Row renders one data row in the DBO layout with a trailing delimiter.
// The credited amount equals coverage so the legacy extraction sees the same value.
func Row(operationDate, coverage string) string {
	fields := []string{
		"7701234567",
		"044525225",
		"40702810000000000001",
		"RUB",
		operationDate,
		"01",
		"044525974",
		"АО Тинькофф Банк",
		"40702810900000000002",
		"7709876543",
		"ООО Ромашка",
		"15",
		"18.01.2024",
		"",
		coverage,
		"Оплата по счету № 15",
		coverage,
	}
	return strings.Join(fields, ";") + ";\r\n"
}

// BalanceExport is a four-row export already in date order.
func BalanceExport() string {
	return Header +
		Row("18.01.2024 12:36:00", "3302.00") +
		Row("05.02.2024 15:18:00", "265654.00") +
		Row("05.03.2024 14:20:00", "269359.00") +
		Row("05.04.2024 14:11:00", "275674.00")
}

// Encode converts s to Windows-1251 bytes, as the bank writes them.
func Encode(tb testing.TB, s string) []byte {
	tb.Helper()
	b, err := charmap.Windows1251.NewEncoder().Bytes([]byte(s))
	if err != nil {
		tb.Fatalf("encode cp1251: %v", err)
	}
	return b
}
