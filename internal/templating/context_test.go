package templating

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvInvoiceMap(t *testing.T) {
	issue := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	due := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	subtotal, tax, total := 200.0, 20.0, 220.0

	rc := RenderContext{
		Invoice: InvoiceData{
			Number:       "INV-042",
			Status:       "sent",
			IssueDate:    &issue,
			DueDate:      &due,
			CustomerName: "Grace Hopper",
			Notes:        "Net 30",
			Subtotal:     &subtotal,
			Tax:          &tax,
			Total:        &total,
			Items: []ItemData{
				{Name: "Consulting", Quantity: 2, UnitPrice: 100},
			},
		},
		Company:  CompanyData{Name: "My Company", LogoURL: "https://example.com/logo.png"},
		Currency: CurrencyData{Code: "USD", Symbol: "$"},
	}
	env := rc.Env()

	inv, ok := env["invoice"].(map[string]any)
	require.True(t, ok)

	want := map[string]any{
		"invoice_number":  "INV-042",
		"status":          "sent",
		"issue_date":      "Mar 1, 2024",
		"due_date":        "Mar 31, 2024",
		"customer_name":   "Grace Hopper",
		"notes":           "Net 30",
		"subtotal_amount": 200.0,
		"tax_amount":      20.0,
		"total_amount":    220.0,
	}
	for k, v := range want {
		assert.Equal(t, v, inv[k], k)
	}

	items, ok := inv["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	wantItem := map[string]any{
		"name":       "Consulting",
		"quantity":   2.0,
		"unit_price": 100.0,
		"amount":     200.0,
	}
	if diff := cmp.Diff(wantItem, items[0]); diff != "" {
		t.Errorf("item mismatch (-want +got):\n%s", diff)
	}

	company, ok := env["company"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "My Company", company["name"])
	assert.Equal(t, "https://example.com/logo.png", company["logo_url"])

	currency, ok := env["currency"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "$", currency["symbol"])
}

func TestEnvNullableFields(t *testing.T) {
	env := RenderContext{}.Env()

	inv := env["invoice"].(map[string]any)
	assert.Nil(t, inv["notes"])
	assert.Nil(t, inv["terms"])
	assert.Nil(t, inv["discount_amount"])
	assert.Nil(t, inv["total_amount"])
	assert.Equal(t, "", inv["due_date"])

	assert.Equal(t, 0.0, env["subtotal"])
	assert.Equal(t, 0.0, env["discountAmount"])
	assert.Equal(t, 0.0, env["total"])
	assert.Equal(t, "", env["dueDate"])

	company := env["company"].(map[string]any)
	assert.Nil(t, company["logo_url"])
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2024, time.December, 25, 10, 30, 0, 0, time.UTC)
	tests := []struct {
		name string
		v    any
		want string
	}{
		{"nil", nil, ""},
		{"time", ts, "Dec 25, 2024"},
		{"time_pointer", &ts, "Dec 25, 2024"},
		{"nil_pointer", (*time.Time)(nil), ""},
		{"zero_time", time.Time{}, ""},
		{"rfc3339_string", "2024-12-25T10:30:00Z", "Dec 25, 2024"},
		{"date_string", "2024-12-25", "Dec 25, 2024"},
		{"empty_string", "", ""},
		{"garbage_string", "not a date", ""},
		{"other_type", 42, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatDate(tt.v); got != tt.want {
				t.Errorf("formatDate(%v) = %q, want %q", tt.v, got, tt.want)
			}
		})
	}
}

func TestWhenHelper(t *testing.T) {
	assert.Equal(t, "yes", whenHelper(true, "yes", "no"))
	assert.Equal(t, "no", whenHelper(nil, "yes", "no"))
	assert.Equal(t, "", whenHelper(false, "yes"))
	assert.Equal(t, "yes", whenHelper("truthy string", "yes"))
}
