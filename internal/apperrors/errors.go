package apperrors

import (
	"errors"
	"fmt"
)

// LoadFailedPrefix is the user-facing prefix shared by every dataset load failure.
const LoadFailedPrefix = "データの取得に失敗しました"

// ErrUpstreamStatus is returned when the sheet export answers with a non-2xx status.
type ErrUpstreamStatus struct {
	Code   int
	Status string
}

// Error implements the error interface.
func (e *ErrUpstreamStatus) Error() string {
	if e.Status == "" {
		return fmt.Sprintf("HTTP %d", e.Code)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Status)
}

// Is allows for error checking with errors.Is().
func (e *ErrUpstreamStatus) Is(target error) bool {
	_, ok := target.(*ErrUpstreamStatus)
	return ok
}

// ErrEmptySheet is returned when the export holds no data rows after the header.
type ErrEmptySheet struct {
	Lines int
}

// Error implements the error interface.
func (e *ErrEmptySheet) Error() string {
	return "シートにデータがありません"
}

// Is allows for error checking with errors.Is().
func (e *ErrEmptySheet) Is(target error) bool {
	_, ok := target.(*ErrEmptySheet)
	return ok
}

// ErrSheetNotPublished is returned when the export URL serves an HTML page
// instead of CSV, which happens when the sheet is private or unpublished.
type ErrSheetNotPublished struct {
	Title string
}

// Error implements the error interface.
func (e *ErrSheetNotPublished) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("sheet is not published as CSV (got HTML page %q)", e.Title)
	}
	return "sheet is not published as CSV (got HTML page)"
}

// Is allows for error checking with errors.Is().
func (e *ErrSheetNotPublished) Is(target error) bool {
	_, ok := target.(*ErrSheetNotPublished)
	return ok
}

// ErrDatasetNotReady is returned when a draw is requested before any dataset was loaded.
type ErrDatasetNotReady struct {
	Cause error
}

// Error implements the error interface.
func (e *ErrDatasetNotReady) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("dataset not ready: %v", e.Cause)
	}
	return "dataset not ready"
}

// Unwrap returns the load failure that left the dataset empty, if any.
func (e *ErrDatasetNotReady) Unwrap() error {
	return e.Cause
}

// Is allows for error checking with errors.Is().
func (e *ErrDatasetNotReady) Is(target error) bool {
	_, ok := target.(*ErrDatasetNotReady)
	return ok
}

// NewDatasetNotReadyError creates an ErrDatasetNotReady carrying the last load failure.
func NewDatasetNotReadyError(cause error) *ErrDatasetNotReady {
	return &ErrDatasetNotReady{Cause: cause}
}

// UserMessage collapses any load failure into the single message shown to users.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var notReady *ErrDatasetNotReady
	if errors.As(err, &notReady) && notReady.Cause != nil {
		err = notReady.Cause
	}
	return fmt.Sprintf("%s: %s", LoadFailedPrefix, err.Error())
}
