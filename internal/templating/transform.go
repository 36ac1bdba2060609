package templating

import (
	"strconv"
	"strings"
)

// Names of the helpers the transformer emits calls to. The evaluator installs
// them alongside the caller-provided values.
const (
	helperTruthy  = "truthy"
	helperTpl     = "tpl"
	helperMapJoin = "mapjoin"
)

// transformExpr rewrites one embedded expression body into its
// interpolation-ready form. Classification priority is fixed:
// mapping > ternary > logical-AND > plain.
func transformExpr(body string, f exprFlags) (string, error) {
	switch {
	case f.mapping:
		return transformMapping(body)
	case f.ternary:
		return transformTernary(body)
	case f.logicalAnd:
		return transformLogicalAnd(body)
	default:
		return interp(body), nil
	}
}

// interp wraps expression text in the evaluator's interpolation delimiters.
// Plain expressions pass through unchanged apart from this wrapping.
func interp(body string) string {
	return "${" + body + "}"
}

// transformMapping rewrites `coll.map(params => body)` into a mapjoin helper
// call: the receiver, the recursively compiled body as a sub-template, and
// the parameter names. The helper renders the sub-template once per element
// and joins the results into a single string.
//
// If no arrow is found after the parameter region, the whole expression is
// treated as a plain (non-arrow) call and left unmodified.
func transformMapping(body string) (string, error) {
	idx := findMapCall(body)
	if idx < 0 {
		return interp(body), nil
	}
	recv := strings.TrimSpace(body[:idx])

	open := idx + len(".map")
	for open < len(body) && isSpaceByte(body[open]) {
		open++
	}
	if open >= len(body) || body[open] != '(' {
		return interp(body), nil
	}

	args, end, err := scanBalanced(body, open, '(', ')')
	if err != nil {
		return "", err
	}

	// A trailing .join(...) is redundant: the helper already joins.
	rest := strings.TrimSpace(body[end:])
	if rest != "" && !strings.HasPrefix(rest, ".join") {
		return interp(body), nil
	}

	arrow := findTopLevel(args, "=>")
	if arrow < 0 {
		// Not an arrow function; plain fallback.
		return interp(body), nil
	}

	params := parseParams(args[:arrow])
	sub, err := mappingBody(strings.TrimSpace(args[arrow+2:]))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("${")
	b.WriteString(helperMapJoin)
	b.WriteByte('(')
	b.WriteString(recv)
	b.WriteString(", ")
	b.WriteString(quoteExpr(sub))
	for _, p := range params {
		b.WriteString(", ")
		b.WriteString(quoteExpr(p))
	}
	b.WriteString(")}")
	return b.String(), nil
}

// mappingBody converts an arrow-function body into a sub-template string.
// Parenthesized markup fragments and brace-delimited blocks are unwrapped and
// any nested embedded expressions inside them compiled recursively; a bare
// expression becomes a single-interpolation sub-template.
func mappingBody(s string) (string, error) {
	switch {
	case strings.HasPrefix(s, "("):
		inner, _, err := scanBalanced(s, 0, '(', ')')
		if err != nil {
			return "", err
		}
		s = strings.TrimSpace(inner)
	case strings.HasPrefix(s, "{"):
		inner, _, err := scanBalanced(s, 0, '{', '}')
		if err != nil {
			return "", err
		}
		s = strings.TrimSpace(inner)
		s = strings.TrimPrefix(s, "return")
		s = strings.TrimSuffix(strings.TrimSpace(s), ";")
		s = strings.TrimSpace(s)
	}

	if strings.HasPrefix(s, "<") {
		return compileFragment(s)
	}
	return interp(s), nil
}

// parseParams extracts parameter names from the region before the arrow:
// either a single bare identifier or a parenthesized, comma-separated list.
func parseParams(s string) []string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = s[1 : len(s)-1]
	}
	var params []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			params = append(params, p)
		}
	}
	return params
}

// transformTernary rewrites `cond ? a : b`. Branches whose trimmed text
// starts with '<' are markup: they are compiled recursively and wrapped in a
// tpl sub-template call; plain branches stay bare expressions. The condition
// goes through the truthy helper so null and empty values short-circuit the
// way template authors expect.
func transformTernary(body string) (string, error) {
	q := findTernaryQuestion(body)
	if q < 0 {
		return interp(body), nil
	}
	c := findTernaryColon(body, q+1)
	if c < 0 {
		return "", &CompileError{Offset: q, Msg: "ternary '?' without matching ':'"}
	}

	cond := strings.TrimSpace(body[:q])
	tb, err := ternaryBranch(body[q+1 : c])
	if err != nil {
		return "", rebase(err, q+1)
	}
	fb, err := ternaryBranch(body[c+1:])
	if err != nil {
		return "", rebase(err, c+1)
	}

	return "${" + helperTruthy + "(" + cond + ") ? " + tb + " : " + fb + "}", nil
}

func ternaryBranch(s string) (string, error) {
	s = stripWrappingParens(strings.TrimSpace(s))
	if strings.HasPrefix(s, "<") {
		compiled, err := compileFragment(s)
		if err != nil {
			return "", err
		}
		return helperTpl + "(" + quoteExpr(compiled) + ")", nil
	}
	return s, nil
}

// transformLogicalAnd rewrites `cond && <markup>` into a ternary with an
// empty-string false branch. A right-hand side that is not markup is not
// specially handled and falls through unchanged as a plain expression.
func transformLogicalAnd(body string) (string, error) {
	a := findTopLevel(body, "&&")
	if a < 0 {
		return interp(body), nil
	}

	cond := strings.TrimSpace(body[:a])
	rhs := stripWrappingParens(strings.TrimSpace(body[a+2:]))
	if !strings.HasPrefix(rhs, "<") {
		return interp(body), nil
	}

	compiled, err := compileFragment(rhs)
	if err != nil {
		return "", rebase(err, a+2)
	}
	return "${" + helperTruthy + "(" + cond + ") ? " + helperTpl + "(" + quoteExpr(compiled) + `) : ""}`, nil
}

// stripWrappingParens removes one layer of parens if they wrap the whole
// string, i.e. the opening paren's match is the final byte.
func stripWrappingParens(s string) string {
	if !strings.HasPrefix(s, "(") {
		return s
	}
	inner, end, err := scanBalanced(s, 0, '(', ')')
	if err != nil || end != len(s) {
		return s
	}
	return strings.TrimSpace(inner)
}

// quoteExpr renders s as a string literal in the expression language.
func quoteExpr(s string) string {
	return strconv.Quote(s)
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
