package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name         string
		invoice      Invoice
		wantSubtotal float64
		wantTotal    float64
	}{
		{
			"items_only",
			Invoice{Items: []InvoiceItem{
				{Quantity: 2, UnitPrice: 100},
				{Quantity: 1, UnitPrice: 50},
			}},
			250, 250,
		},
		{
			"all_components",
			Invoice{
				Items:          []InvoiceItem{{Quantity: 10, UnitPrice: 150}},
				DiscountAmount: fptr(100),
				TaxAmount:      fptr(140),
				ShippingAmount: fptr(10),
			},
			1500, 1550,
		},
		{
			"nil_components_contribute_zero",
			Invoice{
				Items:     []InvoiceItem{{Quantity: 1, UnitPrice: 100}},
				TaxAmount: fptr(8),
			},
			100, 108,
		},
		{
			"no_items",
			Invoice{},
			0, 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ComputeTotals(&tt.invoice)
			require.NotNil(t, tt.invoice.SubtotalAmount)
			require.NotNil(t, tt.invoice.TotalAmount)
			assert.Equal(t, tt.wantSubtotal, *tt.invoice.SubtotalAmount)
			assert.Equal(t, tt.wantTotal, *tt.invoice.TotalAmount)
		})
	}
}

func TestComputeTotalsPreservesNullComponents(t *testing.T) {
	inv := Invoice{Items: []InvoiceItem{{Quantity: 1, UnitPrice: 10}}}
	ComputeTotals(&inv)
	assert.Nil(t, inv.DiscountAmount)
	assert.Nil(t, inv.TaxAmount)
	assert.Nil(t, inv.ShippingAmount)
}

func TestItemAmount(t *testing.T) {
	assert.Equal(t, 375.0, InvoiceItem{Quantity: 2.5, UnitPrice: 150}.Amount())
	assert.Equal(t, 0.0, InvoiceItem{Quantity: 0, UnitPrice: 150}.Amount())
}
