package csvimport

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// sniffSize is how much of the file is inspected for the text encoding
const sniffSize = 4096

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Option configures the underlying csv.Reader
type Option func(*csv.Reader)

// WithDelimiter sets the field delimiter (default is comma)
func WithDelimiter(d rune) Option {
	return func(r *csv.Reader) {
		r.Comma = d
	}
}

// Reader reads spreadsheet CSV exports. It drops a UTF-8 byte order mark,
// decodes non UTF-8 files as Windows-1252 and accepts ragged rows and stray quotes.
type Reader struct {
	csv *csv.Reader
}

// Record is one CSV row and the line it started on
type Record struct {
	Line   int
	Fields []string
}

// Field returns field i trimmed, or "" when the row is shorter
func (r Record) Field(i int) string {
	if i < 0 || i >= len(r.Fields) {
		return ""
	}
	return strings.TrimSpace(r.Fields[i])
}

// IsBlank reports whether every field is empty
func (r Record) IsBlank() bool {
	for i := range r.Fields {
		if r.Field(i) != "" {
			return false
		}
	}
	return true
}

// Contains reports whether any field contains s, ignoring case
func (r Record) Contains(s string) bool {
	s = strings.ToLower(s)
	for _, f := range r.Fields {
		if strings.Contains(strings.ToLower(f), s) {
			return true
		}
	}
	return false
}

// NewReader prepares r for reading. An empty input is ErrEmptyFile.
func NewReader(r io.Reader, opts ...Option) (*Reader, error) {
	buf := bufio.NewReaderSize(r, sniffSize)

	head, err := buf.Peek(len(utf8BOM))
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if bytes.Equal(head, utf8BOM) {
		_, _ = buf.Discard(len(utf8BOM))
	}

	content, err := buf.Peek(sniffSize)
	if err != nil && err != io.EOF && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(strings.TrimSpace(string(content))) == 0 {
		return nil, ErrEmptyFile
	}

	var src io.Reader = buf
	if !looksUTF8(content, len(content) < sniffSize) {
		src = transform.NewReader(buf, charmap.Windows1252.NewDecoder())
	}

	cr := csv.NewReader(src)
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	for _, opt := range opts {
		opt(cr)
	}
	return &Reader{csv: cr}, nil
}

// looksUTF8 validates b, ignoring a rune cut off at the end of an incomplete sample
func looksUTF8(b []byte, complete bool) bool {
	if !complete {
		for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
			if utf8.RuneStart(b[i]) {
				if !utf8.FullRune(b[i:]) {
					b = b[:i]
				}
				break
			}
		}
	}
	return utf8.Valid(b)
}

// Next returns the next record or io.EOF
func (r *Reader) Next() (Record, error) {
	fields, err := r.csv.Read()
	if err != nil {
		if err == io.EOF {
			return Record{}, io.EOF
		}
		return Record{}, fmt.Errorf("%w: %v", ErrMalformedFile, err)
	}
	line, _ := r.csv.FieldPos(0)
	return Record{Line: line, Fields: fields}, nil
}

// ReadAll returns every non-blank record
func (r *Reader) ReadAll() ([]Record, error) {
	var records []Record
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		if rec.IsBlank() {
			continue
		}
		records = append(records, rec)
	}
}

// FindHeader returns the index of the first record matching isHeader, or -1
func FindHeader(records []Record, isHeader func(Record) bool) int {
	for i, rec := range records {
		if isHeader(rec) {
			return i
		}
	}
	return -1
}
