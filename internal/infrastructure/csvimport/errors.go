package csvimport

import (
	"errors"
	"fmt"
)

// Row error codes
const (
	ErrCodeRequiredField = "ERR_IMPORT_REQUIRED_FIELD"
	ErrCodeInvalidFormat = "ERR_IMPORT_INVALID_FORMAT"
	ErrCodeRowRejected   = "ERR_IMPORT_ROW_REJECTED"
)

// DefaultMaxErrors caps the row errors kept by an ErrorCollection
const DefaultMaxErrors = 100

var (
	// ErrEmptyFile is returned when the CSV file has no content
	ErrEmptyFile = errors.New("CSV file is empty")

	// ErrMalformedFile is returned when the CSV structure cannot be read
	ErrMalformedFile = errors.New("malformed CSV file")
)

// RowError is a problem with one line of an import
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

func (e RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d, column '%s': %s", e.Row, e.Column, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// ErrorCollection keeps the first row errors of an import and counts the rest
type ErrorCollection struct {
	errors     []RowError
	maxErrors  int
	totalCount int
}

// NewErrorCollection creates an ErrorCollection keeping at most maxErrors
func NewErrorCollection(maxErrors int) *ErrorCollection {
	if maxErrors <= 0 {
		maxErrors = DefaultMaxErrors
	}
	return &ErrorCollection{maxErrors: maxErrors}
}

func (ec *ErrorCollection) Add(err RowError) {
	ec.totalCount++
	if len(ec.errors) < ec.maxErrors {
		ec.errors = append(ec.errors, err)
	}
}

// AddFormatError records a value that does not parse
func (ec *ErrorCollection) AddFormatError(row int, column, expected, value string) {
	ec.Add(RowError{
		Row:     row,
		Column:  column,
		Code:    ErrCodeInvalidFormat,
		Message: fmt.Sprintf("invalid format, expected %s", expected),
		Value:   value,
	})
}

// AddRequiredError records a missing value
func (ec *ErrorCollection) AddRequiredError(row int, column string) {
	ec.Add(RowError{Row: row, Column: column, Code: ErrCodeRequiredField, Message: fmt.Sprintf("field '%s' is required", column)})
}

// AddRejected records a row the ledger refused
func (ec *ErrorCollection) AddRejected(row int, column, message string) {
	ec.Add(RowError{Row: row, Column: column, Code: ErrCodeRowRejected, Message: message})
}

// Errors returns the kept errors, never nil
func (ec *ErrorCollection) Errors() []RowError {
	if ec.errors == nil {
		return []RowError{}
	}
	return ec.errors
}

func (ec *ErrorCollection) TotalCount() int { return ec.totalCount }

func (ec *ErrorCollection) HasErrors() bool { return ec.totalCount > 0 }

// IsTruncated reports whether errors were dropped past the limit
func (ec *ErrorCollection) IsTruncated() bool { return ec.totalCount > ec.maxErrors }
