package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	invoicedomain "github.com/smallbiznis/factura/internal/invoice/domain"
	"github.com/smallbiznis/factura/internal/pagination"
)

func (s *Server) CreateInvoice(c *gin.Context) {
	var req invoicedomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListInvoices(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Status       string `form:"status"`
		Number       string `form:"number"`
		CustomerName string `form:"customer_name"`
		IssuedFrom   string `form:"issued_from"`
		IssuedTo     string `form:"issued_to"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	issuedFrom, err := parseOptionalDate(query.IssuedFrom, false)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid_issued_from"})
		return
	}
	issuedTo, err := parseOptionalDate(query.IssuedTo, true)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid_issued_to"})
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListRequest{
		Pagination:   query.Pagination,
		Status:       query.Status,
		Number:       query.Number,
		CustomerName: query.CustomerName,
		IssuedFrom:   issuedFrom,
		IssuedTo:     issuedTo,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("X-Total-Count", strconv.FormatInt(resp.EstimatedTotal, 10))
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInvoice(c *gin.Context) {
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateInvoice(c *gin.Context) {
	var req invoicedomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	req.ID = c.Param("id")

	resp, err := s.invoiceSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	if err := s.invoiceSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportInvoiceDocument streams the invoice back as a downloadable PDF.
// Errors come back as plain-text statuses, not JSON, since the caller is a
// browser download.
func (s *Server) ExportInvoiceDocument(c *gin.Context) {
	pdf, filename, err := s.exportSvc.ExportPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case isNotFoundError(err):
			status = http.StatusNotFound
		case isValidationError(err):
			status = http.StatusBadRequest
		case isConversionError(err):
			status = http.StatusBadGateway
		}
		c.String(status, "could not export invoice: %s", err.Error())
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func parseOptionalDate(value string, endOfDay bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		t, err = time.Parse(time.RFC3339, value)
		if err != nil {
			return nil, err
		}
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
