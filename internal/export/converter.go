package export

import (
	"context"
	"fmt"
)

// Converter turns a complete HTML document into a binary, print-ready
// document. Implementations drive external rendering engines and must honor
// the context deadline.
type Converter interface {
	Convert(ctx context.Context, doc string) ([]byte, error)
}

// ConversionError reports a failure of the external conversion engine:
// failed to start, crashed, or exceeded its deadline. It is retryable a
// bounded number of times; no partial output ever accompanies it.
type ConversionError struct {
	Op      string
	Timeout bool
	Err     error
}

func (e *ConversionError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("document conversion timed out: %s", e.Op)
	}
	return fmt.Sprintf("document conversion failed: %s: %v", e.Op, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
