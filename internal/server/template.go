package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	tmpldomain "github.com/smallbiznis/factura/internal/invoicetemplate/domain"
)

func (s *Server) CreateTemplate(c *gin.Context) {
	var req tmpldomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	resp, err := s.templateSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListTemplates(c *gin.Context) {
	var req tmpldomain.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	items, err := s.templateSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (s *Server) GetTemplate(c *gin.Context) {
	resp, err := s.templateSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateTemplate(c *gin.Context) {
	var req tmpldomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	req.ID = c.Param("id")

	resp, err := s.templateSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SetDefaultTemplate(c *gin.Context) {
	resp, err := s.templateSvc.SetDefault(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// PreviewTemplate renders a stored template against a sample invoice so
// template authors can see the effect of an edit before saving it as the
// default. Template errors propagate with their offsets.
func (s *Server) PreviewTemplate(c *gin.Context) {
	markup, err := s.exportSvc.Preview(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"markup": markup}})
}
