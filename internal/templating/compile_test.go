package templating

import (
	"errors"
	"testing"
)

func TestCompileMarkup(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"plain_text",
			"<div><h1>Invoice</h1></div>",
			"<div><h1>Invoice</h1></div>",
		},
		{
			"class_attribute",
			`<div className="invoice">x</div>`,
			`<div class="invoice">x</div>`,
		},
		{
			"embedded_expression",
			"<h1>Invoice #{invoice.invoice_number}</h1>",
			"<h1>Invoice #${invoice.invoice_number}</h1>",
		},
		{
			"html_comment_stripped",
			"<div><!-- header -->x</div>",
			"<div>x</div>",
		},
		{
			"inline_comment_stripped",
			"<div>{/* note */}x</div>",
			"<div>x</div>",
		},
		{
			"self_closing_expanded",
			`<div className="spacer"/>`,
			`<div class="spacer"></div>`,
		},
		{
			"void_tag_untouched",
			`<img src={company.logo_url}/>`,
			`<img src=${company.logo_url}/>`,
		},
		{
			"mapping_rewritten",
			"<table>{invoice.items.map(item => (<tr><td>{item.name}</td></tr>))}</table>",
			`<table>${mapjoin(invoice.items, "<tr><td>${item.name}</td></tr>", "item")}</table>`,
		},
		{
			"conditional_rewritten",
			"<div>{invoice.notes && <p>{invoice.notes}</p>}</div>",
			`<div>${truthy(invoice.notes) ? tpl("<p>${invoice.notes}</p>") : ""}</div>`,
		},
		{
			"ternary_rewritten",
			`<div>{paid ? (<b>PAID</b>) : (<i>DUE</i>)}</div>`,
			`<div>${truthy(paid) ? tpl("<b>PAID</b>") : tpl("<i>DUE</i>")}</div>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compile(tt.src, FormatMarkup)
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Compile()\n got  %q\n want %q", got, tt.want)
			}
		})
	}
}

func TestCompileDeterministic(t *testing.T) {
	src := "<div>{invoice.items.map(item => (<tr><td>{item.name}</td></tr>))}{invoice.notes && <p>{invoice.notes}</p>}</div>"
	first, err := Compile(src, FormatMarkup)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := Compile(src, FormatMarkup)
		if err != nil {
			t.Fatalf("Compile() error = %v", err)
		}
		if again != first {
			t.Fatalf("Compile() not deterministic: %q vs %q", again, first)
		}
	}
}

func TestCompilePlainPassthrough(t *testing.T) {
	src := "Invoice ${invoice.invoice_number}, total ${total}"
	got, err := Compile(src, FormatPlain)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if got != src {
		t.Errorf("Compile() = %q, want verbatim source", got)
	}
}

func TestCompileFormatAuto(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"interpolation_without_markup_attrs_is_plain",
			"Total: ${total}",
			"Total: ${total}",
		},
		{
			"class_attr_forces_markup",
			`<div className="x">{total}</div>`,
			`<div class="x">${total}</div>`,
		},
		{
			"no_interpolation_is_markup",
			"<div>{total}</div>",
			"<div>${total}</div>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compile(tt.src, FormatAuto)
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Compile()\n got  %q\n want %q", got, tt.want)
			}
		})
	}
}

func TestCompileUnbalancedExpression(t *testing.T) {
	src := "<p>{invoice.invoice_number</p>"
	_, err := Compile(src, FormatMarkup)
	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("Compile() error = %v, want *CompileError", err)
	}
	if ce.Offset != len(src) {
		t.Errorf("Compile() offset = %d, want end of input %d", ce.Offset, len(src))
	}
}

func TestCompileNoPartialOutputOnError(t *testing.T) {
	got, err := Compile("<div>{ok}</div><p>{broken", FormatMarkup)
	if err == nil {
		t.Fatal("Compile() expected error")
	}
	if got != "" {
		t.Errorf("Compile() returned partial output %q", got)
	}
}
