// Package dbo reads DBO bank exports: Windows-1251 encoded, semicolon
// delimited files with one header row and a fixed column layout.
//
// The pipeline is decoder -> tokenizer -> schema mapping -> statement. It is
// all-or-nothing: the first row that fails aborts the parse and no partial
// statement is returned.
package dbo

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/guttosm/dbostatement/internal/domain/models"
)

// Options controls the shape of the export being parsed.
type Options struct {
	Schema     Schema
	HeaderRows int
	Delimiter  rune
}

// DefaultOptions describes a standard DBO export.
func DefaultOptions() Options {
	return Options{
		Schema:     DefaultSchema,
		HeaderRows: 1,
		Delimiter:  defaultDelimiter,
	}
}

// Parser turns an export into a Statement. It holds no state between calls
// and may be shared.
type Parser struct {
	opts Options
}

// NewParser returns a parser for the given options.
func NewParser(opts Options) *Parser {
	return &Parser{opts: opts}
}

// Parse reads r to the end. It returns the sorted statement, a *RowError for
// the first row that fails mapping, or a *ReadError when r cannot be
// tokenized.
func (p *Parser) Parse(r io.Reader) (*models.Statement, error) {
	tok := NewTokenizer(NewDecoder(r), TokenizerOptions{
		Delimiter:  p.opts.Delimiter,
		HeaderRows: p.opts.HeaderRows,
	})

	var records []models.Record
	for {
		row, err := tok.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		rec, err := p.opts.Schema.Map(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return models.NewStatement(records), nil
}

// ReadStatement parses a standard DBO export.
func ReadStatement(r io.Reader) (*models.Statement, error) {
	return NewParser(DefaultOptions()).Parse(r)
}

// ReadIncomes parses a standard DBO export with LegacySchema, keeping only
// operation date, amount and comment.
func ReadIncomes(r io.Reader) (*models.Statement, error) {
	opts := DefaultOptions()
	opts.Schema = LegacySchema
	return NewParser(opts).Parse(r)
}

// ReadStatementFile opens path, parses it with ReadStatement and closes it.
func ReadStatementFile(path string) (*models.Statement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadStatement(f)
}
