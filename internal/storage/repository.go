package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/guttosm/dbostatement/internal/domain/models"
	pq "github.com/lib/pq"
)

// ErrDuplicateFilename is returned by InsertStatement when a statement with the
// same filename is already stored.
var ErrDuplicateFilename = errors.New("statement already stored for filename")

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// StatementRepository defines contract for DB operations.
type StatementRepository interface {
	InsertStatement(ctx context.Context, filename string, st *models.Statement) (uuid.UUID, error)
	HasStatement(ctx context.Context, filename string) (bool, error)
	ReplaceStatement(ctx context.Context, filename string, st *models.Statement) (uuid.UUID, error)
	DeleteStatementByFilename(ctx context.Context, filename string) error
	GetSummary(ctx context.Context, id uuid.UUID) (*models.StatementSummary, error)
}

type statementRepository struct {
	db *sql.DB
}

func NewStatementRepository(db *sql.DB) StatementRepository {
	return &statementRepository{db: db}
}

// newID is an indirection for tests that need a stable statement id.
var newID = uuid.New

const insertStatementSQL = `INSERT INTO statements (id, filename, record_count) VALUES ($1, $2, $3)`

const deleteStatementSQL = `DELETE FROM statements WHERE filename = $1`

const insertRecordSQL = `
	INSERT INTO statement_records (
		statement_id, position,
		party_tax_id, party_bank_id, party_account, currency,
		operation_date, operation_code, counterparty_bank_id, payment_provider,
		counterparty_account, counterparty_tax_id, counterparty_name,
		document_number, document_date, debit, credit, payment_purpose, coverage
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)`

// InsertStatement stores the statement row and all its records, in iteration
// order, in a single transaction.
func (r *statementRepository) InsertStatement(ctx context.Context, filename string, st *models.Statement) (uuid.UUID, error) {
	return r.inTx(ctx, func(tx *sql.Tx) (uuid.UUID, error) {
		return insertStatement(ctx, tx, filename, st)
	})
}

// ReplaceStatement deletes any statement stored under filename and stores st
// in its place. Both happen in one transaction, so a failed insert keeps the
// previous statement.
func (r *statementRepository) ReplaceStatement(ctx context.Context, filename string, st *models.Statement) (uuid.UUID, error) {
	return r.inTx(ctx, func(tx *sql.Tx) (uuid.UUID, error) {
		if _, err := tx.ExecContext(ctx, deleteStatementSQL, filename); err != nil {
			return uuid.Nil, fmt.Errorf("delete existing: %w", err)
		}
		return insertStatement(ctx, tx, filename, st)
	})
}

// inTx runs fn in a transaction, committing on success and rolling back on error.
func (r *statementRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) (uuid.UUID, error)) (uuid.UUID, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}

	id, err := fn(tx)
	if err != nil {
		_ = tx.Rollback()
		return uuid.Nil, err
	}
	if err := tx.Commit(); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func insertStatement(ctx context.Context, tx *sql.Tx, filename string, st *models.Statement) (uuid.UUID, error) {
	id := newID()

	if _, err := tx.ExecContext(ctx, insertStatementSQL, id, filename, st.Len()); err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, fmt.Errorf("%w: %s", ErrDuplicateFilename, filename)
		}
		return uuid.Nil, err
	}

	stmt, err := tx.PrepareContext(ctx, insertRecordSQL)
	if err != nil {
		return uuid.Nil, err
	}
	defer stmt.Close()

	position := 0
	for rec := range st.All() {
		position++
		if _, err := stmt.ExecContext(ctx,
			id,
			position,
			rec.PartyTaxID,
			rec.PartyBankID,
			rec.PartyAccount,
			rec.Currency,
			rec.OperationDate,
			rec.OperationCode,
			rec.CounterpartyBankID,
			rec.PaymentProvider,
			rec.CounterpartyAccount,
			rec.CounterpartyTaxID,
			rec.CounterpartyName,
			rec.DocumentNumber,
			nullDate(rec.DocumentDate),
			rec.Debit,
			rec.Credit,
			rec.PaymentPurpose,
			rec.Coverage,
		); err != nil {
			return uuid.Nil, fmt.Errorf("insert record %d: %w", position, err)
		}
	}
	return id, nil
}

// HasStatement checks if a file was already imported.
func (r *statementRepository) HasStatement(ctx context.Context, filename string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM statements WHERE filename = $1)`, filename).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// DeleteStatementByFilename removes a statement; its records go with it through
// ON DELETE CASCADE.
func (r *statementRepository) DeleteStatementByFilename(ctx context.Context, filename string) error {
	_, err := r.db.ExecContext(ctx, deleteStatementSQL, filename)
	return err
}

const summarySQL = `
	SELECT
		s.filename,
		s.record_count,
		s.imported_at,
		MIN(r.operation_date) AS first_operation,
		MAX(r.operation_date) AS last_operation,
		COALESCE(SUM(r.debit), 0) AS total_debit,
		COALESCE(SUM(r.credit), 0) AS total_credit,
		COALESCE(SUM(r.coverage), 0) AS total_coverage
	FROM statements s
	LEFT JOIN statement_records r ON r.statement_id = s.id
	WHERE s.id = $1
	GROUP BY s.id, s.filename, s.record_count, s.imported_at`

// GetSummary returns the stored summary of a statement, or nil when no
// statement has that id.
func (r *statementRepository) GetSummary(ctx context.Context, id uuid.UUID) (*models.StatementSummary, error) {
	sum := models.StatementSummary{ID: id}
	var first, last sql.NullTime

	err := r.db.QueryRowContext(ctx, summarySQL, id).Scan(
		&sum.Filename,
		&sum.RecordCount,
		&sum.ImportedAt,
		&first,
		&last,
		&sum.TotalDebit,
		&sum.TotalCredit,
		&sum.TotalCoverage,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if first.Valid {
		dt := civil.DateTimeOf(first.Time)
		sum.FirstOperation = &dt
	}
	if last.Valid {
		dt := civil.DateTimeOf(last.Time)
		sum.LastOperation = &dt
	}
	return &sum, nil
}

// nullDate maps an unset document date to NULL.
func nullDate(d civil.Date) interface{} {
	if d.IsZero() {
		return nil
	}
	return d
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
