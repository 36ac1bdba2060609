package templating

import "fmt"

// snippetLimit bounds how much compiled text a RenderError carries for diagnostics.
const snippetLimit = 120

// CompileError reports malformed template source: unbalanced expression
// delimiters or a mapping/ternary construct the transformer cannot parse.
// Offset is the byte position in the source where the scan gave up; for an
// unterminated expression it points at end of input.
type CompileError struct {
	Offset int
	Msg    string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("template compile error at offset %d: %s", e.Offset, e.Msg)
}

// rebase shifts a CompileError's offset by delta. Transform helpers report
// offsets relative to the expression body; the compiler rebases them to the
// enclosing source before returning.
func rebase(err error, delta int) error {
	if ce, ok := err.(*CompileError); ok {
		return &CompileError{Offset: ce.Offset + delta, Msg: ce.Msg}
	}
	return err
}

// RenderError reports a failure while evaluating compiled template text:
// an unresolved name, a bad member access, a helper that returned an error.
// Snippet holds a bounded prefix of the compiled text for diagnostics.
type RenderError struct {
	Msg     string
	Snippet string
	Err     error
}

func newRenderError(err error, compiled string) *RenderError {
	s := compiled
	if len(s) > snippetLimit {
		s = s[:snippetLimit]
	}
	return &RenderError{Msg: err.Error(), Snippet: s, Err: err}
}

func (e *RenderError) Error() string {
	return "template render error: " + e.Msg
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
