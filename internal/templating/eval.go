package templating

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/expr-lang/expr"
	"github.com/spf13/afero"
)

// Evaluator executes compiled interpolable text against an allowlisted set
// of named values. Each ${...} placeholder is compiled with the allowlist
// as its entire environment: an unresolved name is an error, and the
// expression engine has no I/O, process or module-loading capability, so the
// allowlist is the whole reachable surface.
//
// Evaluator is stateless per call and safe for concurrent use.
type Evaluator struct {
	// DumpFS and DumpPath enable an opt-in diagnostic hook that writes the
	// compiled text before evaluation. Both must be set; the default is no
	// filesystem access at all.
	DumpFS   afero.Fs
	DumpPath string
}

// Evaluate resolves every interpolation in compiled against env, producing
// the final markup string. Any failure, from an unresolved name to a helper
// error deep inside a mapping body, surfaces as a single *RenderError; no
// partial output is returned.
func (e *Evaluator) Evaluate(compiled string, env map[string]any) (string, error) {
	if e.DumpFS != nil && e.DumpPath != "" {
		_ = afero.WriteFile(e.DumpFS, e.DumpPath, []byte(compiled), 0o644)
	}
	out, err := e.run(compiled, env)
	if err != nil {
		if re, ok := err.(*RenderError); ok {
			return "", re
		}
		return "", newRenderError(err, compiled)
	}
	return out, nil
}

// run evaluates one template string against vars. It installs the rewrite
// helpers (truthy, tpl, mapjoin) as closures over vars, so sub-templates in
// ternary branches and mapping bodies recurse through here with the proper
// scope and nothing more.
func (e *Evaluator) run(text string, vars map[string]any) (string, error) {
	full := make(map[string]any, len(vars)+3)
	for k, v := range vars {
		full[k] = v
	}
	full[helperTruthy] = isTruthy
	full[helperTpl] = func(body string) (string, error) {
		return e.run(body, vars)
	}
	full[helperMapJoin] = func(coll any, body string, params ...string) (string, error) {
		return e.mapJoin(coll, body, params, vars)
	}

	items, err := lexInterpol(text)
	if err != nil {
		return "", newRenderError(err, text)
	}

	var b strings.Builder
	for _, it := range items {
		switch it.typ {
		case itemText:
			b.WriteString(it.val)
		case itemExpr:
			prog, err := expr.Compile(it.val, expr.Env(full))
			if err != nil {
				return "", newRenderError(err, text)
			}
			v, err := expr.Run(prog, full)
			if err != nil {
				return "", newRenderError(err, text)
			}
			b.WriteString(stringify(v))
		}
	}
	return b.String(), nil
}

// mapJoin renders the body sub-template once per element of coll, binding
// the first parameter to the element and the second to the index, and joins
// the results. Non-list input yields the empty string rather than an error.
func (e *Evaluator) mapJoin(coll any, body string, params []string, vars map[string]any) (string, error) {
	if coll == nil {
		return "", nil
	}
	rv := reflect.ValueOf(coll)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return "", nil
	}

	var b strings.Builder
	for i := 0; i < rv.Len(); i++ {
		scope := make(map[string]any, len(vars)+2)
		for k, v := range vars {
			scope[k] = v
		}
		if len(params) > 0 && params[0] != "" {
			scope[params[0]] = rv.Index(i).Interface()
		}
		if len(params) > 1 && params[1] != "" {
			scope[params[1]] = i
		}
		out, err := e.run(body, scope)
		if err != nil {
			return "", err
		}
		b.WriteString(out)
	}
	return b.String(), nil
}

// Render compiles src in the given format and evaluates it against the
// render context in one call.
func (e *Evaluator) Render(src string, format Format, rc RenderContext) (string, error) {
	compiled, err := Compile(src, format)
	if err != nil {
		return "", err
	}
	return e.Evaluate(compiled, rc.Env())
}

// isTruthy mirrors the truthiness rules template authors write against:
// nil, false, zero numbers, empty strings and empty collections are falsy.
func isTruthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int32:
		return t != 0
	case int64:
		return t != 0
	case uint:
		return t != 0
	case uint64:
		return t != 0
	case float32:
		return t != 0
	case float64:
		return t != 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Ptr, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

// stringify converts an interpolation result to display text. nil renders as
// the empty string so a null field never corrupts the document.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return formatDate(t)
	default:
		return fmt.Sprint(t)
	}
}

// Implementation of the lexer based on https://go.dev/talks/2011/lex.slide

const (
	eof        rune = -1
	leftDelim       = "${"
	rightDelim      = "}"
)

type itemType int

const (
	itemError itemType = iota
	itemEOF
	itemText
	itemExpr
)

type item struct {
	typ itemType
	val string
}

// stateFn represents the state of the scanner as a function that returns the
// next state.
type stateFn func(*lexer) stateFn

// lexer holds the state of the interpolation scanner.
type lexer struct {
	input       string // the string being scanned
	start       int    // start position of this item
	pos         int    // current position in the input
	width       int    // width of last rune read from input
	bracesDepth int    // nesting depth of braces {}
	items       []item
}

// lexInterpol splits compiled text into literal and expression items.
func lexInterpol(s string) ([]item, error) {
	l := &lexer{input: s, items: make([]item, 0)}
	for state := lexText; state != nil; {
		state = state(l)
	}
	for _, it := range l.items {
		if it.typ == itemError {
			return nil, fmt.Errorf("%s", it.val)
		}
	}
	return l.items, nil
}

// emit passes an item back to the client.
func (l *lexer) emit(t itemType) stateFn {
	l.items = append(l.items, item{t, l.input[l.start:l.pos]})
	l.start = l.pos
	return nil
}

// errorf returns an error token and terminates the scan by passing back a
// nil pointer that will be the next state.
func (l *lexer) errorf(format string, args ...any) stateFn {
	l.items = append(l.items, item{itemError, fmt.Sprintf(format, args...)})
	return nil
}

func (l *lexer) scanString(quote rune) {
	for ch := l.next(); ch != quote; ch = l.next() {
		if ch == eof {
			l.errorf("unterminated string")
			return
		}
		if ch == '\\' {
			l.next()
		}
	}
}

// next returns the next rune in the input.
func (l *lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = w
	l.pos += w
	return r
}

// ignore skips over the pending input before this point.
func (l *lexer) ignore() {
	l.start = l.pos
}

// atRightDelim reports whether the lexer is at a right delimiter.
func (l *lexer) atRightDelim() bool {
	return l.bracesDepth == 0 && strings.HasPrefix(l.input[l.pos:], rightDelim)
}

func lexText(l *lexer) stateFn {
	if x := strings.Index(l.input[l.pos:], leftDelim); x >= 0 {
		if x > 0 {
			l.pos += x
			l.emit(itemText)
		}
		return lexLeftDelim
	}
	l.pos = len(l.input)
	if l.pos > l.start {
		l.emit(itemText)
	}
	return l.emit(itemEOF)
}

func lexLeftDelim(l *lexer) stateFn {
	l.pos += len(leftDelim)
	l.ignore()
	return lexExpr
}

func lexRightDelim(l *lexer) stateFn {
	l.pos += len(rightDelim)
	l.ignore()
	return lexText
}

func lexExpr(l *lexer) stateFn {
	if l.atRightDelim() {
		l.emit(itemExpr)
		return lexRightDelim
	}
	switch r := l.next(); r {
	case eof:
		return l.errorf("unclosed interpolation")
	case '\'', '"':
		l.scanString(r)
	case '{':
		l.bracesDepth++
	case '}':
		l.bracesDepth--
	}
	return lexExpr
}
