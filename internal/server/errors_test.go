package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/smallbiznis/factura/internal/export"
	invoicedomain "github.com/smallbiznis/factura/internal/invoice/domain"
	tmpldomain "github.com/smallbiznis/factura/internal/invoicetemplate/domain"
	"github.com/smallbiznis/factura/internal/pagination"
	"github.com/smallbiznis/factura/internal/templating"
)

func TestAbortWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid_invoice_id", invoicedomain.ErrInvalidID, http.StatusBadRequest},
		{"invalid_items", invoicedomain.ErrInvalidItems, http.StatusBadRequest},
		{"invalid_template_format", tmpldomain.ErrInvalidFormat, http.StatusBadRequest},
		{"invalid_page_token", pagination.ErrInvalidToken, http.StatusBadRequest},
		{"compile_error", &templating.CompileError{Offset: 3, Msg: "unterminated expression"}, http.StatusBadRequest},
		{"render_error", &templating.RenderError{Msg: "unresolved name"}, http.StatusBadRequest},
		{"invoice_not_found", invoicedomain.ErrInvoiceNotFound, http.StatusNotFound},
		{"template_not_found", tmpldomain.ErrTemplateNotFound, http.StatusNotFound},
		{"conversion_error", &export.ConversionError{Op: "wkhtmltopdf", Err: errors.New("exit 1")}, http.StatusBadGateway},
		{"unknown_error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			AbortWithError(c, tt.err)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
