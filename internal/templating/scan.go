package templating

import (
	"regexp"
	"strings"
)

// mappingPeek is how far past the opening brace the scanner looks for a
// mapping call signature. Mapping detection wins over ternary and logical-AND
// detection, so the receiver expression may itself contain either operator.
const mappingPeek = 100

var mappingSigRe = regexp.MustCompile(`\.map\s*\(`)

// exprFlags records what the scanner observed at the top nesting level of an
// expression body. The classifier uses them to pick a transform:
// mapping > ternary > logicalAnd > plain.
type exprFlags struct {
	mapping    bool
	ternary    bool
	logicalAnd bool
}

// scanExpr scans a balanced embedded expression. start must point at the
// opening '{'. It returns the expression body (without the outer braces), the
// index immediately after the closing '}', and the classification flags.
//
// The scan tracks brace, paren and bracket depth, string state (single,
// double and template quotes, with backslash escapes) and skips line and
// block comments outside of strings. A '}' only terminates the expression
// when brace depth returns to zero outside a string. If depth never returns
// to zero, the error carries the end-of-input offset.
func scanExpr(src string, start int) (string, int, exprFlags, error) {
	var f exprFlags

	peekEnd := start + 1 + mappingPeek
	if peekEnd > len(src) {
		peekEnd = len(src)
	}
	f.mapping = mappingSigRe.MatchString(src[start+1 : peekEnd])

	braces, parens, brackets := 1, 0, 0
	var quote byte

	i := start + 1
	for i < len(src) {
		c := src[i]

		if quote != 0 {
			switch c {
			case '\\':
				i += 2
				continue
			case quote:
				quote = 0
			}
			i++
			continue
		}

		switch c {
		case '\'', '"', '`':
			quote = c
		case '/':
			if i+1 < len(src) && src[i+1] == '/' {
				nl := strings.IndexByte(src[i:], '\n')
				if nl < 0 {
					i = len(src)
					continue
				}
				i += nl
				continue
			}
			if i+1 < len(src) && src[i+1] == '*' {
				end := strings.Index(src[i+2:], "*/")
				if end < 0 {
					return "", 0, f, &CompileError{Offset: len(src), Msg: "unterminated block comment"}
				}
				i += 2 + end + 2
				continue
			}
		case '{':
			braces++
		case '}':
			braces--
			if braces == 0 {
				return src[start+1 : i], i + 1, f, nil
			}
		case '(':
			parens++
		case ')':
			parens--
		case '[':
			brackets++
		case ']':
			brackets--
		case '?':
			// A top-level '?' marks a ternary unless it is optional chaining.
			if braces == 1 && parens == 0 && brackets == 0 {
				if i+1 >= len(src) || src[i+1] != '.' {
					f.ternary = true
				}
			}
		case '&':
			if i+1 < len(src) && src[i+1] == '&' {
				if braces == 1 && parens == 0 && brackets == 0 {
					f.logicalAnd = true
				}
				i += 2
				continue
			}
		}
		i++
	}

	return "", 0, f, &CompileError{Offset: len(src), Msg: "unterminated expression"}
}

// walkTopLevel visits every byte of s that sits at nesting depth zero outside
// string literals, calling fn with the index. Returning true from fn stops
// the walk and makes walkTopLevel return that index. Returns -1 if fn never
// matched.
func walkTopLevel(s string, fn func(i int) bool) int {
	depth := 0
	var quote byte

	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		default:
			if depth == 0 && fn(i) {
				return i
			}
		}
	}
	return -1
}

// findTopLevel returns the index of the first top-level occurrence of sub in
// s, or -1.
func findTopLevel(s, sub string) int {
	if sub == "" {
		return -1
	}
	return walkTopLevel(s, func(i int) bool {
		return s[i] == sub[0] && strings.HasPrefix(s[i:], sub)
	})
}

// findMapCall returns the index of the first top-level ".map" whose next
// non-space byte is '(', or -1.
func findMapCall(s string) int {
	return walkTopLevel(s, func(i int) bool {
		if s[i] != '.' || !strings.HasPrefix(s[i:], ".map") {
			return false
		}
		j := i + len(".map")
		for j < len(s) && isSpaceByte(s[j]) {
			j++
		}
		return j < len(s) && s[j] == '('
	})
}

// findTernaryQuestion returns the index of the first top-level '?' that is
// not part of optional chaining, or -1.
func findTernaryQuestion(s string) int {
	return walkTopLevel(s, func(i int) bool {
		return s[i] == '?' && (i+1 >= len(s) || s[i+1] != '.')
	})
}

// findTernaryColon returns the index of the ':' matching a '?' already
// consumed before from. Nested ternaries between them are skipped.
func findTernaryColon(s string, from int) int {
	pending := 0
	idx := walkTopLevel(s[from:], func(i int) bool {
		sub := s[from:]
		switch sub[i] {
		case '?':
			if i+1 >= len(sub) || sub[i+1] != '.' {
				pending++
			}
		case ':':
			if pending == 0 {
				return true
			}
			pending--
		}
		return false
	})
	if idx < 0 {
		return -1
	}
	return from + idx
}

// scanBalanced returns the text between the delimiter at open and its
// matching close, plus the index just after the close. It respects string
// literals and nested delimiters of all three kinds.
func scanBalanced(s string, open int, oc, cc byte) (string, int, error) {
	depth := 0
	var quote byte

	for i := open; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case oc:
			depth++
		case cc:
			depth--
			if depth == 0 {
				return s[open+1 : i], i + 1, nil
			}
		}
	}
	return "", 0, &CompileError{Offset: len(s), Msg: "unbalanced " + string(oc)}
}
