package ingestion

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/dbostatement/internal/dbo"
	"github.com/guttosm/dbostatement/internal/logger"
	"github.com/guttosm/dbostatement/internal/storage"
)

const exportExt = ".csv"

// ErrNoExports is returned when the input directory holds no export files.
var ErrNoExports = errors.New("no export files found")

// repoCtor is an indirection for creating the repository; tests can override this.
var repoCtor = func(db *sql.DB) storage.StatementRepository {
	return storage.NewStatementRepository(db)
}

// ProcessDirectory imports every DBO export (*.csv, any case) found directly
// in dir.
//
//   - dir:      directory containing the exports.
//   - db:       open *sql.DB (PostgreSQL).
//   - parallel: files processed at once; <= 0 means runtime.NumCPU().
//   - force:    re-import files already stored, replacing the old statement
//     in the same transaction as the new insert.
//
// Files are dispatched in name order. Each file is parsed on its own, fully,
// before anything is written. The first failing file cancels the files not
// yet started and its error is returned.
func ProcessDirectory(ctx context.Context, dir string, db *sql.DB, parallel int, force bool) error {
	repo := repoCtor(db)
	log := logger.Component("ingestion")

	files, err := listExports(dir)
	if err != nil {
		return err
	}

	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}
	log.Info().Int("files", len(files)).Str("dir", dir).Int("max_parallel", parallel).Bool("force", force).Msg("ingestion start")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			start := time.Now()
			name := filepath.Base(path)
			flog := log.With().Int("idx", i+1).Int("total", len(files)).Str("file", name).Logger()

			if err := gctx.Err(); err != nil {
				return err
			}
			flog.Info().Msg("file start")

			exists, err := repo.HasStatement(gctx, name)
			if err != nil {
				flog.Error().Err(err).Msg("check existing statement failed")
				return fmt.Errorf("file %s: check existing statement: %w", path, err)
			}
			if exists && !force {
				flog.Info().Bool("skipped", true).Msg("already imported")
				return nil
			}

			st, err := dbo.ReadStatementFile(path)
			if err != nil {
				flog.Error().Dur("elapsed", time.Since(start)).Err(err).Msg("file failed")
				return fmt.Errorf("file %s: %w", path, err)
			}

			store := repo.InsertStatement
			if exists {
				store = repo.ReplaceStatement
			}
			id, err := store(gctx, name, st)
			if err != nil {
				flog.Error().Err(err).Bool("replace", exists).Msg("store statement failed")
				return fmt.Errorf("file %s: store statement: %w", path, err)
			}

			flog.Info().Str("id", id.String()).Int("records", st.Len()).Dur("elapsed", time.Since(start)).Bool("replaced", exists).Msg("file done")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// listExports returns the sorted paths of the export files in dir.
func listExports(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), exportExt) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoExports, dir)
	}
	slices.Sort(files)
	return files, nil
}
