package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/dbostatement/internal/dbo"
	"github.com/guttosm/dbostatement/internal/domain/models"
	"github.com/guttosm/dbostatement/internal/logger"
	"github.com/guttosm/dbostatement/internal/storage"
)

var (
	// ErrAlreadyImported is returned when a statement with the same filename
	// is already stored.
	ErrAlreadyImported = errors.New("statement already imported")
	// ErrNotFound is returned when no statement has the requested id.
	ErrNotFound = errors.New("statement not found")
)

// StatementService imports DBO exports and serves stored summaries.
type StatementService interface {
	Import(ctx context.Context, filename string, r io.Reader) (*models.StatementSummary, error)
	GetSummary(ctx context.Context, id uuid.UUID) (*models.StatementSummary, error)
}

type statementService struct {
	repo storage.StatementRepository
}

func NewStatementService(repo storage.StatementRepository) StatementService {
	return &statementService{repo: repo}
}

// now is an indirection for tests.
var now = time.Now

// Import parses r as a DBO export and stores it under filename.
//
// Parse failures are returned wrapped, so callers can reach the underlying
// *dbo.RowError or *dbo.ReadError with errors.As.
func (s *statementService) Import(ctx context.Context, filename string, r io.Reader) (*models.StatementSummary, error) {
	log := logger.Component("service")

	exists, err := s.repo.HasStatement(ctx, filename)
	if err != nil {
		return nil, fmt.Errorf("check existing statement: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyImported, filename)
	}

	st, err := dbo.ReadStatement(r)
	if err != nil {
		log.Warn().Str("file", filename).Err(err).Msg("export rejected")
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	id, err := s.repo.InsertStatement(ctx, filename, st)
	if errors.Is(err, storage.ErrDuplicateFilename) {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyImported, filename)
	}
	if err != nil {
		return nil, fmt.Errorf("store %s: %w", filename, err)
	}

	sum := models.SummarizeStatement(id, filename, now().UTC(), st)
	log.Info().Str("file", filename).Str("id", id.String()).Int("records", sum.RecordCount).Msg("statement imported")
	return &sum, nil
}

func (s *statementService) GetSummary(ctx context.Context, id uuid.UUID) (*models.StatementSummary, error) {
	sum, err := s.repo.GetSummary(ctx, id)
	if err != nil {
		return nil, err
	}
	if sum == nil {
		return nil, ErrNotFound
	}
	return sum, nil
}
