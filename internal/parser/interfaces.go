package parser

import "io"

// Parser defines a generic interface for turning a fetched sheet export into records
type Parser[T any] interface {
	// Parse decodes body according to contentType and returns the records in source order.
	Parse(body io.Reader, contentType string) ([]T, error)
}
