package export

import (
	"strings"

	"golang.org/x/net/html"
)

// documentShell is the minimal fixed shell every rendered invoice is wrapped
// in before conversion: font stack, reset styles, and a fixed physical page
// size with margins. Only the rendered markup varies between exports.
const documentShell = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8" />
<title>Invoice</title>
<style>
@page { size: A4; margin: 18mm 16mm; }
* { box-sizing: border-box; margin: 0; padding: 0; }
body {
  font-family: "Helvetica Neue", Helvetica, Arial, sans-serif;
  font-size: 13px;
  color: #111827;
  background: #ffffff;
}
h1, h2, h3 { margin-bottom: 8px; }
p { margin-bottom: 4px; }
table { width: 100%; border-collapse: collapse; margin: 16px 0; }
th, td { padding: 8px 10px; border-bottom: 1px solid #e5e7eb; text-align: left; }
th { text-transform: uppercase; font-size: 11px; letter-spacing: 0.04em; color: #6b7280; }
.invoice { max-width: 820px; margin: 0 auto; }
.header { display: flex; justify-content: space-between; margin-bottom: 24px; }
.logo { max-height: 48px; }
.totals { text-align: right; margin-top: 12px; }
.total { font-size: 16px; font-weight: bold; }
.notes, .terms { margin-top: 16px; font-size: 12px; color: #6b7280; }
</style>
</head>
<body>
%BODY%
</body>
</html>
`

// WrapDocument places rendered invoice markup into the document shell and
// normalizes the result through the HTML parser, so the conversion engine
// always receives a well-formed document regardless of how loose the
// template's markup was.
func WrapDocument(markup string) string {
	doc := strings.Replace(documentShell, "%BODY%", markup, 1)
	return normalizeDocument(doc)
}

func normalizeDocument(doc string) string {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		// The parser accepts almost anything; if it refuses, pass the
		// document through untouched and let the converter report it.
		return doc
	}
	var buf strings.Builder
	if err := html.Render(&buf, root); err != nil {
		return doc
	}
	return buf.String()
}
