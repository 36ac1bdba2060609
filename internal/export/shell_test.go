package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapDocument(t *testing.T) {
	doc := WrapDocument(`<div class="invoice"><h1>Invoice #INV-001</h1></div>`)

	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>") || strings.HasPrefix(doc, "<!doctype html>"),
		"document should start with a doctype, got %q", doc[:40])
	assert.Contains(t, doc, "Invoice #INV-001")
	assert.Contains(t, doc, "@page { size: A4;")
	assert.Contains(t, doc, "font-family:")
}

func TestWrapDocumentRepairsLooseMarkup(t *testing.T) {
	// An unclosed tag must not leak into the converter: the parser closes it.
	doc := WrapDocument("<div><p>dangling")
	assert.Contains(t, doc, "</p>")
	assert.Contains(t, doc, "</div>")
	assert.Contains(t, doc, "</html>")
}

func TestWrapDocumentIsStable(t *testing.T) {
	markup := "<div><p>same input</p></div>"
	assert.Equal(t, WrapDocument(markup), WrapDocument(markup))
}
