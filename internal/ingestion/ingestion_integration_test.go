//go:build integration
// +build integration

package ingestion

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/guttosm/dbostatement/internal/dbo/dbotest"
	"github.com/guttosm/dbostatement/internal/storage/pgtest"
)

func TestIngestion_EndToEnd_ProcessDirectory(t *testing.T) {
	dsn, terminate := pgtest.StartPostgres(t)
	defer terminate()
	db := pgtest.OpenMigrated(t, dsn)
	defer db.Close()

	dir := t.TempDir()
	content := dbotest.Encode(t, dbotest.BalanceExport())
	if err := os.WriteFile(filepath.Join(dir, "2024-q1.csv"), content, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := ProcessDirectory(ctx, dir, db, 2, false); err != nil {
		t.Fatalf("ProcessDirectory: %v", err)
	}

	var cnt int
	if err := db.QueryRow(`
		SELECT COUNT(*) FROM statement_records r
		JOIN statements s ON s.id = r.statement_id
		WHERE s.filename = '2024-q1.csv'`).Scan(&cnt); err != nil {
		t.Fatalf("count records: %v", err)
	}
	if cnt != 4 {
		t.Fatalf("expected 4 records, got %d", cnt)
	}

	// A second run without force leaves the stored statement alone.
	if err := ProcessDirectory(ctx, dir, db, 2, false); err != nil {
		t.Fatalf("second ProcessDirectory: %v", err)
	}
	if err := ProcessDirectory(ctx, dir, db, 2, true); err != nil {
		t.Fatalf("forced ProcessDirectory: %v", err)
	}
	var statements int
	if err := db.QueryRow(`SELECT COUNT(*) FROM statements`).Scan(&statements); err != nil {
		t.Fatalf("count statements: %v", err)
	}
	if statements != 1 {
		t.Fatalf("expected 1 statement after re-import, got %d", statements)
	}
}
