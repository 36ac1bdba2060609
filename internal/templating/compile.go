package templating

import (
	"regexp"
	"strings"
)

// Format declares how a stored template is written. It is an explicit stored
// property of the template; FormatAuto exists only for legacy rows that
// predate the format column and falls back to a content heuristic.
type Format string

const (
	FormatAuto   Format = ""
	FormatPlain  Format = "plain"
	FormatMarkup Format = "markup"
)

var (
	htmlCommentRe = regexp.MustCompile(`<!--[\s\S]*?-->`)
	jsxCommentRe  = regexp.MustCompile(`\{\s*/\*[\s\S]*?\*/\s*\}`)
	classAttrRe   = regexp.MustCompile(`\bclassName(\s*=)`)
	splitChainRe  = regexp.MustCompile(`\?\s+\.`)

	// Block-level tags that downstream document renderers refuse in
	// self-closing form.
	selfClosingRe = regexp.MustCompile(`<(div|span|p|h[1-6]|li|td|th)((?:[^>"']|"[^"]*"|'[^']*')*?)\s*/>`)
)

// Compile turns template source into interpolable text ready for evaluation.
// Compilation is deterministic and side-effect free, so results may be cached
// keyed by source text.
//
// A plain-interpolation template passes through verbatim. Markup templates go
// through, in order: comment stripping (document and inline dialect
// comments), class-attribute normalization, expression rewriting via the
// scanner and transformer, repair of optional-chaining tokens split by the
// rewrite, and expansion of self-closing block-level tags.
//
// Any unbalanced expression surfaces as a *CompileError carrying the
// offending byte offset; there is no partial output.
func Compile(src string, format Format) (string, error) {
	if format == FormatAuto {
		if isPlainInterpolation(src) {
			format = FormatPlain
		} else {
			format = FormatMarkup
		}
	}
	if format == FormatPlain {
		return src, nil
	}

	s := htmlCommentRe.ReplaceAllString(src, "")
	s = jsxCommentRe.ReplaceAllString(s, "")
	s = classAttrRe.ReplaceAllString(s, "class$1")

	out, err := compileFragment(s)
	if err != nil {
		return "", err
	}

	out = splitChainRe.ReplaceAllString(out, "?.")
	out = selfClosingRe.ReplaceAllString(out, "<$1$2></$1>")
	return out, nil
}

// isPlainInterpolation is the legacy content heuristic: interpolation markers
// present but no markup-dialect class attribute. Stored formats make this
// unnecessary for new rows.
func isPlainInterpolation(src string) bool {
	return strings.Contains(src, "${") && !strings.Contains(src, "className")
}

// compileFragment replaces every top-level embedded expression in s with its
// interpolation-ready form. The transformer calls back into this function for
// markup found inside mapping and ternary bodies, so nested expressions are
// handled by recursion rather than flat substitution.
func compileFragment(s string) (string, error) {
	var b strings.Builder
	i := 0
	for i < len(s) {
		j := strings.IndexByte(s[i:], '{')
		if j < 0 {
			b.WriteString(s[i:])
			break
		}
		b.WriteString(s[i : i+j])

		start := i + j
		body, end, flags, err := scanExpr(s, start)
		if err != nil {
			return "", err
		}
		t, err := transformExpr(body, flags)
		if err != nil {
			return "", rebase(err, start+1)
		}
		b.WriteString(t)
		i = end
	}
	return b.String(), nil
}
