package templating

import (
	"errors"
	"testing"
)

func TestScanExpr(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantBody string
		wantEnd  int
		wantF    exprFlags
		wantErr  bool
	}{
		{"simple", "{foo}", "foo", 5, exprFlags{}, false},
		{"member", "{invoice.total}", "invoice.total", 15, exprFlags{}, false},
		{"nested_braces", "{a({b: 1})}", "a({b: 1})", 11, exprFlags{}, false},
		{"brace_in_string", `{a("}")}`, `a("}")`, 8, exprFlags{}, false},
		{"brace_in_single_quote", `{a('}')}`, `a('}')`, 8, exprFlags{}, false},
		{"brace_in_template_quote", "{a(`}`)}", "a(`}`)", 8, exprFlags{}, false},
		{"escaped_quote", `{a("\"}")}`, `a("\"}")`, 10, exprFlags{}, false},
		{"line_comment", "{a // }\n}", "a // }\n", 9, exprFlags{}, false},
		{"block_comment", "{a /* } */}", "a /* } */", 11, exprFlags{}, false},
		{"ternary", "{x ? a : b}", "x ? a : b", 11, exprFlags{ternary: true}, false},
		{"optional_chain_not_ternary", "{x?.y}", "x?.y", 6, exprFlags{}, false},
		{"nested_ternary_ignored", "{a(x ? 1 : 2)}", "a(x ? 1 : 2)", 14, exprFlags{}, false},
		{"logical_and", "{x && y}", "x && y", 8, exprFlags{logicalAnd: true}, false},
		{"and_inside_parens_ignored", "{a(x && y)}", "a(x && y)", 11, exprFlags{}, false},
		{"mapping", "{items.map(i => i)}", "items.map(i => i)", 19, exprFlags{mapping: true}, false},
		{"mapping_wins_over_and", "{xs && xs.map(i => i)}", "xs && xs.map(i => i)", 22, exprFlags{mapping: true, logicalAnd: true}, false},
		{"unterminated", "{foo", "", 0, exprFlags{}, true},
		{"unterminated_block_comment", "{a /* }", "", 0, exprFlags{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, end, f, err := scanExpr(tt.src, 0)
			if (err != nil) != tt.wantErr {
				t.Fatalf("scanExpr() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ce *CompileError
				if !errors.As(err, &ce) {
					t.Fatalf("scanExpr() error type = %T, want *CompileError", err)
				}
				if ce.Offset != len(tt.src) {
					t.Errorf("scanExpr() offset = %d, want end of input %d", ce.Offset, len(tt.src))
				}
				return
			}
			if body != tt.wantBody {
				t.Errorf("scanExpr() body = %q, want %q", body, tt.wantBody)
			}
			if end != tt.wantEnd {
				t.Errorf("scanExpr() end = %d, want %d", end, tt.wantEnd)
			}
			if f != tt.wantF {
				t.Errorf("scanExpr() flags = %+v, want %+v", f, tt.wantF)
			}
		})
	}
}

func TestFindMapCall(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want int
	}{
		{"basic", "items.map(i => i)", 5},
		{"spaced", "items.map (i => i)", 5},
		{"not_a_call", "site.maps", -1},
		{"prefix_collision", "site.maps.map(i => i)", 9},
		{"in_string", `a(".map(") `, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findMapCall(tt.s); got != tt.want {
				t.Errorf("findMapCall(%q) = %d, want %d", tt.s, got, tt.want)
			}
		})
	}
}

func TestFindTernaryColon(t *testing.T) {
	tests := []struct {
		name string
		s    string
		from int
		want int
	}{
		{"flat", "a ? b : c", 4, 6},
		{"nested_skipped", "a ? (x ? 1 : 2) : c", 4, 16},
		{"colon_in_string", `a ? ":" : c`, 4, 8},
		{"missing", "a ? b", 4, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findTernaryColon(tt.s, tt.from); got != tt.want {
				t.Errorf("findTernaryColon(%q, %d) = %d, want %d", tt.s, tt.from, got, tt.want)
			}
		})
	}
}

func TestScanBalanced(t *testing.T) {
	inner, end, err := scanBalanced("(a, (b), c) tail", 0, '(', ')')
	if err != nil {
		t.Fatalf("scanBalanced() error = %v", err)
	}
	if inner != "a, (b), c" {
		t.Errorf("scanBalanced() inner = %q", inner)
	}
	if end != 11 {
		t.Errorf("scanBalanced() end = %d, want 11", end)
	}

	if _, _, err := scanBalanced("(a, (b)", 0, '(', ')'); err == nil {
		t.Error("scanBalanced() expected error for unbalanced input")
	}
}
