package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallbiznis/factura/internal/invoicetemplate/domain"
	"github.com/smallbiznis/factura/internal/templating"
)

func TestValidateSource(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		format  string
		wantErr error
	}{
		{"valid_markup", `<div className="invoice">{invoice.invoice_number}</div>`, "markup", nil},
		{"valid_plain", "Invoice ${invoice.invoice_number}", "plain", nil},
		{"legacy_empty_format", "Total: ${total}", "", nil},
		{"unknown_format", "<div/>", "pdf", domain.ErrInvalidFormat},
		{"blank_source", "   ", "markup", domain.ErrInvalidSource},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSource(tt.src, tt.format)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateSourceReportsCompileErrors(t *testing.T) {
	err := validateSource("<p>{invoice.invoice_number", "markup")
	var ce *templating.CompileError
	require.True(t, errors.As(err, &ce), "save-time validation should surface compile errors, got %v", err)
}
