package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/dbostatement/internal/dbo"
	"github.com/guttosm/dbostatement/internal/dbo/dbotest"
	"github.com/guttosm/dbostatement/internal/domain/models"
	"github.com/guttosm/dbostatement/internal/storage"
	"github.com/shopspring/decimal"
)

type stubRepo struct {
	exists    bool
	existsErr error
	insertID  uuid.UUID
	insertErr error
	summary   *models.StatementSummary
	getErr    error

	inserted *models.Statement
}

func (s *stubRepo) InsertStatement(_ context.Context, _ string, st *models.Statement) (uuid.UUID, error) {
	s.inserted = st
	return s.insertID, s.insertErr
}
func (s *stubRepo) ReplaceStatement(_ context.Context, _ string, st *models.Statement) (uuid.UUID, error) {
	s.inserted = st
	return s.insertID, s.insertErr
}
func (s *stubRepo) HasStatement(context.Context, string) (bool, error) { return s.exists, s.existsErr }
func (s *stubRepo) DeleteStatementByFilename(context.Context, string) error {
	return nil
}
func (s *stubRepo) GetSummary(context.Context, uuid.UUID) (*models.StatementSummary, error) {
	return s.summary, s.getErr
}

func TestImport_TableDriven(t *testing.T) {
	id := uuid.MustParse("4f6d1c3e-9a51-4c0e-8d59-3c8a9f1d2b7e")
	good := dbotest.Encode(t, dbotest.BalanceExport())
	badDate := dbotest.Encode(t, dbotest.Header+dbotest.Row("2024-01-18", "1.00"))

	cases := []struct {
		name       string
		repo       *stubRepo
		body       []byte
		wantIs     error
		wantRowErr bool
		wantStored bool
	}{
		{name: "success", repo: &stubRepo{insertID: id}, body: good, wantStored: true},
		{name: "already imported", repo: &stubRepo{exists: true}, body: good, wantIs: ErrAlreadyImported},
		{name: "exists check fails", repo: &stubRepo{existsErr: errors.New("down")}, body: good},
		{name: "row error", repo: &stubRepo{}, body: badDate, wantRowErr: true},
		{name: "insert race", repo: &stubRepo{insertErr: storage.ErrDuplicateFilename}, body: good, wantIs: ErrAlreadyImported},
		{name: "insert fails", repo: &stubRepo{insertErr: errors.New("disk full")}, body: good},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewStatementService(tc.repo)
			sum, err := svc.Import(context.Background(), "jan.csv", bytes.NewReader(tc.body))

			if tc.wantStored {
				if err != nil || sum == nil {
					t.Fatalf("unexpected: sum=%+v err=%v", sum, err)
				}
				if sum.ID != id || sum.RecordCount != 4 || sum.Filename != "jan.csv" {
					t.Fatalf("unexpected summary %+v", sum)
				}
				if !sum.TotalCoverage.Equal(decimal.RequireFromString("813989")) {
					t.Fatalf("coverage=%s", sum.TotalCoverage)
				}
				if tc.repo.inserted == nil || tc.repo.inserted.Len() != 4 {
					t.Fatalf("statement not handed to repository")
				}
				return
			}

			if err == nil || sum != nil {
				t.Fatalf("expected error, got sum=%+v err=%v", sum, err)
			}
			if tc.wantIs != nil && !errors.Is(err, tc.wantIs) {
				t.Fatalf("want %v, got %v", tc.wantIs, err)
			}
			var rowErr *dbo.RowError
			if got := errors.As(err, &rowErr); got != tc.wantRowErr {
				t.Fatalf("errors.As(*dbo.RowError)=%v want %v (err=%v)", got, tc.wantRowErr, err)
			}
			if tc.wantRowErr && (rowErr.Row != 2 || rowErr.Column != 5) {
				t.Fatalf("row error at row %d column %d", rowErr.Row, rowErr.Column)
			}
		})
	}
}

func TestImport_StampsImportTime(t *testing.T) {
	at := time.Date(2024, 1, 25, 8, 0, 0, 0, time.UTC)
	prev := now
	now = func() time.Time { return at }
	defer func() { now = prev }()

	svc := NewStatementService(&stubRepo{insertID: uuid.New()})
	sum, err := svc.Import(context.Background(), "jan.csv", bytes.NewReader(dbotest.Encode(t, dbotest.Header)))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !sum.ImportedAt.Equal(at) {
		t.Fatalf("imported_at=%v want %v", sum.ImportedAt, at)
	}
	if sum.RecordCount != 0 || sum.FirstOperation != nil {
		t.Fatalf("empty export should give empty summary, got %+v", sum)
	}
}

func TestGetSummary_TableDriven(t *testing.T) {
	cases := []struct {
		name   string
		repo   *stubRepo
		wantIs error
		wantOK bool
	}{
		{name: "found", repo: &stubRepo{summary: &models.StatementSummary{Filename: "jan.csv"}}, wantOK: true},
		{name: "absent", repo: &stubRepo{}, wantIs: ErrNotFound},
		{name: "repo error", repo: &stubRepo{getErr: errors.New("boom")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewStatementService(tc.repo)
			out, err := svc.GetSummary(context.Background(), uuid.New())
			if tc.wantOK {
				if err != nil || out == nil {
					t.Fatalf("unexpected: out=%+v err=%v", out, err)
				}
				return
			}
			if err == nil || out != nil {
				t.Fatalf("expected error, got out=%+v err=%v", out, err)
			}
			if tc.wantIs != nil && !errors.Is(err, tc.wantIs) {
				t.Fatalf("want %v got %v", tc.wantIs, err)
			}
		})
	}
}
