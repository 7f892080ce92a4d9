package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/guttosm/dbostatement/internal/dbo"
	"github.com/guttosm/dbostatement/internal/dbo/dbotest"
)

func writeExport(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "export.csv")
	if err := os.WriteFile(p, dbotest.Encode(t, content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	path := writeExport(t, dbotest.BalanceExport())

	cases := []struct {
		name        string
		args        []string
		wantLines   []string
		wantRecords int
	}{
		{
			name: "summary and default limit",
			args: []string{"parse", "--no-color", path},
			wantLines: []string{
				"records:  4",
				"period:   2024-01-18T12:36:00 .. 2024-04-05T14:11:00",
				"debit:    0.00",
				"coverage: 813989.00",
			},
			wantRecords: 4,
		},
		{
			name:        "limit",
			args:        []string{"parse", "--no-color", "-n", "2", path},
			wantLines:   []string{"records:  4"},
			wantRecords: 2,
		},
		{
			name:        "summary only",
			args:        []string{"parse", "--limit", "0", path},
			wantLines:   []string{"credit:   813989.00"},
			wantRecords: 0,
		},
		{
			name:        "legacy",
			args:        []string{"parse", "--legacy", "--no-color", "--limit", "-1", path},
			wantLines:   []string{"coverage: 813989.00", "credit:   0.00"},
			wantRecords: 4,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := execute(t, tc.args...)
			if err != nil {
				t.Fatalf("execute: %v", err)
			}
			for _, line := range tc.wantLines {
				if !strings.Contains(out, line) {
					t.Fatalf("output missing %q:\n%s", line, out)
				}
			}
			if got := strings.Count(out, "OperationDate:"); got != tc.wantRecords {
				t.Fatalf("printed %d records, want %d:\n%s", got, tc.wantRecords, out)
			}
		})
	}
}

func TestParseCommand_RowError(t *testing.T) {
	path := writeExport(t, dbotest.Header+
		dbotest.Row("18.01.2024 12:36:00", "1.00")+
		dbotest.Row("05.02.2024 15:18:00", "1.00")+
		dbotest.Row("05.03.2024", "1.00"))

	_, err := execute(t, "parse", path)
	var rowErr *dbo.RowError
	if !errors.As(err, &rowErr) {
		t.Fatalf("expected *dbo.RowError, got %v", err)
	}
	if rowErr.Row != 4 || !strings.Contains(err.Error(), "invalid operation date format") {
		t.Fatalf("unexpected diagnostic: %v", err)
	}
}

func TestParseCommand_Args(t *testing.T) {
	if _, err := execute(t, "parse"); err == nil {
		t.Fatalf("expected an error without a file argument")
	}
	if _, err := execute(t, "parse", filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
