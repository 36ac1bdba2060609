package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smallbiznis/factura/internal/export"
	invoicedomain "github.com/smallbiznis/factura/internal/invoice/domain"
	tmpldomain "github.com/smallbiznis/factura/internal/invoicetemplate/domain"
	"github.com/smallbiznis/factura/internal/pagination"
	"github.com/smallbiznis/factura/internal/templating"
)

// AbortWithError maps domain errors onto HTTP statuses: validation failures
// to 400, missing records to 404, conversion-engine exhaustion to 502,
// everything else to 500.
func AbortWithError(c *gin.Context, err error) {
	switch {
	case isValidationError(err):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case isNotFoundError(err):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case isConversionError(err):
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "document conversion failed"})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}

func isValidationError(err error) bool {
	var ce *templating.CompileError
	var re *templating.RenderError
	if errors.As(err, &ce) || errors.As(err, &re) {
		return true
	}
	switch {
	case errors.Is(err, invoicedomain.ErrInvalidID),
		errors.Is(err, invoicedomain.ErrInvalidNumber),
		errors.Is(err, invoicedomain.ErrInvalidCustomer),
		errors.Is(err, invoicedomain.ErrInvalidCurrency),
		errors.Is(err, invoicedomain.ErrInvalidStatus),
		errors.Is(err, invoicedomain.ErrInvalidItems),
		errors.Is(err, tmpldomain.ErrInvalidID),
		errors.Is(err, tmpldomain.ErrInvalidName),
		errors.Is(err, tmpldomain.ErrInvalidFormat),
		errors.Is(err, tmpldomain.ErrInvalidSource),
		errors.Is(err, pagination.ErrInvalidToken):
		return true
	}
	return false
}

func isNotFoundError(err error) bool {
	return errors.Is(err, invoicedomain.ErrInvoiceNotFound) ||
		errors.Is(err, invoicedomain.ErrCompanyNotFound) ||
		errors.Is(err, invoicedomain.ErrCurrencyNotFound) ||
		errors.Is(err, tmpldomain.ErrTemplateNotFound)
}

func isConversionError(err error) bool {
	var convErr *export.ConversionError
	return errors.As(err, &convErr)
}
