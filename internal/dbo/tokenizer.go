package dbo

import (
	"encoding/csv"
	"errors"
	"io"
	"unicode/utf8"
)

const defaultDelimiter = ';'

// ErrUnterminatedQuote is wrapped by the *ReadError returned when the input
// ends inside a quoted field.
var ErrUnterminatedQuote = errors.New("unterminated quoted field")

// TokenizerOptions configures how decoded text is split into rows.
type TokenizerOptions struct {
	Delimiter  rune // field separator, ';' when zero
	HeaderRows int  // leading rows discarded before data rows
}

// Row is one tokenized record with its row number.
//
// Number counts records from 1 including discarded header rows. Blank lines
// are not records and do not advance it, nor does a quoted field spanning
// several lines.
type Row struct {
	Number int
	Fields []string
}

// Tokenizer splits decoded text into rows of raw fields.
//
// It is flexible about field counts: a row is never rejected for having more
// or fewer fields than its neighbours. Fields are returned as-is (no trimming).
// A quote inside an unquoted field is literal text, as in `ООО "Ромашка"`; a
// quoted field still has to be closed before the input ends.
type Tokenizer struct {
	r          *csv.Reader
	quotes     *quoteTracker
	headerRows int
	rows       int
}

// NewTokenizer returns a tokenizer reading from r.
func NewTokenizer(r io.Reader, opts TokenizerOptions) *Tokenizer {
	comma := opts.Delimiter
	if comma == 0 {
		comma = defaultDelimiter
	}
	qt := &quoteTracker{comma: comma, state: fieldStart}
	cr := csv.NewReader(io.TeeReader(r, qt))
	cr.Comma = comma
	cr.FieldsPerRecord = -1 // flexible rows, the mapper checks what it needs
	cr.LazyQuotes = true
	return &Tokenizer{r: cr, quotes: qt, headerRows: opts.HeaderRows}
}

// Next returns the next data row, io.EOF once the input is exhausted, or a
// *ReadError when the text cannot be tokenized.
func (t *Tokenizer) Next() (Row, error) {
	for t.rows < t.headerRows {
		if _, err := t.read(); err != nil {
			return Row{}, err
		}
	}

	fields, err := t.read()
	if err != nil {
		return Row{}, err
	}
	return Row{Number: t.rows, Fields: fields}, nil
}

func (t *Tokenizer) read() ([]string, error) {
	fields, err := t.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, &ReadError{Err: err}
	}
	t.rows++
	// With lazy quotes the reader runs an open quoted field to the end of
	// input and returns it as the final record.
	if t.quotes.open() && t.r.InputOffset() == t.quotes.n {
		line, _ := t.r.FieldPos(len(fields) - 1)
		return nil, &ReadError{Err: &csv.ParseError{StartLine: line, Line: line, Column: 1, Err: ErrUnterminatedQuote}}
	}
	return fields, nil
}

type quoteState int

const (
	fieldStart  quoteState = iota // at the start of a field
	unquoted                      // inside a field that did not open with a quote
	quoted                        // inside a quoted field
	quoteSeen                     // a quote inside a quoted field, closing or escaping
	quoteCR                       // a closing quote followed by '\r'
)

// quoteTracker follows the quoting state of everything the csv reader
// consumes, the same way the reader does with LazyQuotes set.
type quoteTracker struct {
	comma   rune
	state   quoteState
	n       int64
	pending []byte
}

func (q *quoteTracker) Write(p []byte) (int, error) {
	q.n += int64(len(p))
	buf := p
	if len(q.pending) > 0 {
		buf = append(q.pending, p...)
		q.pending = nil
	}
	for len(buf) > 0 {
		if !utf8.FullRune(buf) {
			q.pending = append([]byte(nil), buf...)
			break
		}
		r, size := utf8.DecodeRune(buf)
		q.step(r)
		buf = buf[size:]
	}
	return len(p), nil
}

func (q *quoteTracker) step(r rune) {
	switch q.state {
	case fieldStart:
		switch r {
		case '"':
			q.state = quoted
		case q.comma, '\n':
		default:
			q.state = unquoted
		}
	case unquoted:
		if r == q.comma || r == '\n' {
			q.state = fieldStart
		}
	case quoted:
		if r == '"' {
			q.state = quoteSeen
		}
	case quoteSeen:
		switch r {
		case q.comma, '\n':
			q.state = fieldStart
		case '\r':
			q.state = quoteCR
		default:
			// `""` escapes a quote; any other rune keeps a lazy bare quote.
			q.state = quoted
		}
	case quoteCR:
		if r == '\n' {
			q.state = fieldStart
			return
		}
		q.state = quoted
		q.step(r)
	}
}

// open reports whether the input consumed so far ends inside a quoted field.
func (q *quoteTracker) open() bool {
	return q.state == quoted
}
