package templating

import (
	"errors"
	"testing"
)

func TestTransformExprPlain(t *testing.T) {
	got, err := transformExpr("invoice.total", exprFlags{})
	if err != nil {
		t.Fatalf("transformExpr() error = %v", err)
	}
	if got != "${invoice.total}" {
		t.Errorf("transformExpr() = %q", got)
	}
}

func TestTransformMapping(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{
			"markup_body",
			"invoice.items.map(item => (<tr><td>{item.name}</td></tr>))",
			`${mapjoin(invoice.items, "<tr><td>${item.name}</td></tr>", "item")}`,
			false,
		},
		{
			"index_param",
			"invoice.items.map((item, i) => (<td>{i}</td>))",
			`${mapjoin(invoice.items, "<td>${i}</td>", "item", "i")}`,
			false,
		},
		{
			"block_body_with_return",
			"xs.map(x => { return x.name; })",
			`${mapjoin(xs, "${x.name}", "x")}`,
			false,
		},
		{
			"bare_expression_body",
			"xs.map(x => x.name)",
			`${mapjoin(xs, "${x.name}", "x")}`,
			false,
		},
		{
			"trailing_join_ignored",
			`xs.map(x => x.name).join("")`,
			`${mapjoin(xs, "${x.name}", "x")}`,
			false,
		},
		{
			"not_an_arrow_call",
			"lookup.map(key)",
			"${lookup.map(key)}",
			false,
		},
		{
			"chained_after_map",
			"xs.map(x => x).filter(y)",
			"${xs.map(x => x).filter(y)}",
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := transformMapping(tt.body)
			if (err != nil) != tt.wantErr {
				t.Fatalf("transformMapping() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("transformMapping()\n got  %q\n want %q", got, tt.want)
			}
		})
	}
}

func TestTransformTernary(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"plain_branches",
			`flag ? user.name : "anon"`,
			`${truthy(flag) ? user.name : "anon"}`,
		},
		{
			"markup_branches",
			"flag ? (<b>yes</b>) : (<i>no</i>)",
			`${truthy(flag) ? tpl("<b>yes</b>") : tpl("<i>no</i>")}`,
		},
		{
			"markup_true_plain_false",
			`flag ? (<b>{user.name}</b>) : ""`,
			`${truthy(flag) ? tpl("<b>${user.name}</b>") : ""}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := transformTernary(tt.body)
			if err != nil {
				t.Fatalf("transformTernary() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("transformTernary()\n got  %q\n want %q", got, tt.want)
			}
		})
	}
}

func TestTransformTernaryMissingColon(t *testing.T) {
	_, err := transformTernary("flag ? user.name")
	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("transformTernary() error = %v, want *CompileError", err)
	}
}

func TestTransformLogicalAnd(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"markup_rhs",
			"invoice.notes && <p>Notes: {invoice.notes}</p>",
			`${truthy(invoice.notes) ? tpl("<p>Notes: ${invoice.notes}</p>") : ""}`,
		},
		{
			"parenthesized_markup_rhs",
			"invoice.notes && (<p>{invoice.notes}</p>)",
			`${truthy(invoice.notes) ? tpl("<p>${invoice.notes}</p>") : ""}`,
		},
		{
			"non_markup_rhs_unchanged",
			"a && b",
			"${a && b}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := transformLogicalAnd(tt.body)
			if err != nil {
				t.Fatalf("transformLogicalAnd() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("transformLogicalAnd()\n got  %q\n want %q", got, tt.want)
			}
		})
	}
}

func TestParseParams(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"item", []string{"item"}},
		{"(item, i)", []string{"item", "i"}},
		{" ( item , i ) ", []string{"item", "i"}},
	}
	for _, tt := range tests {
		got := parseParams(tt.in)
		if len(got) != len(tt.want) {
			t.Fatalf("parseParams(%q) = %v, want %v", tt.in, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseParams(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}
