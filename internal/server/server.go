package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/smallbiznis/factura/internal/config"
	"github.com/smallbiznis/factura/internal/export"
	invoicedomain "github.com/smallbiznis/factura/internal/invoice/domain"
	tmpldomain "github.com/smallbiznis/factura/internal/invoicetemplate/domain"
)

// Server holds the HTTP handlers' dependencies.
type Server struct {
	engine      *gin.Engine
	invoiceSvc  invoicedomain.Service
	templateSvc tmpldomain.Service
	exportSvc   *export.Service
	log         *zap.Logger
}

func NewEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	return engine
}

func NewServer(
	engine *gin.Engine,
	invoiceSvc invoicedomain.Service,
	templateSvc tmpldomain.Service,
	exportSvc *export.Service,
	log *zap.Logger,
) *Server {
	return &Server{
		engine:      engine,
		invoiceSvc:  invoiceSvc,
		templateSvc: templateSvc,
		exportSvc:   exportSvc,
		log:         log,
	}
}

// RegisterAPIRoutes mounts the HTTP surface under /api.
func (s *Server) RegisterAPIRoutes() {
	api := s.engine.Group("/api")

	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices", s.ListInvoices)
	api.GET("/invoices/:id", s.GetInvoice)
	api.PATCH("/invoices/:id", s.UpdateInvoice)
	api.DELETE("/invoices/:id", s.DeleteInvoice)
	api.GET("/invoices/:id/document", s.ExportInvoiceDocument)

	api.POST("/templates", s.CreateTemplate)
	api.GET("/templates", s.ListTemplates)
	api.GET("/templates/:id", s.GetTemplate)
	api.PATCH("/templates/:id", s.UpdateTemplate)
	api.POST("/templates/:id/default", s.SetDefaultTemplate)
	api.POST("/templates/:id/preview", s.PreviewTemplate)
}

// RunHTTP starts the HTTP listener under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, cfg *config.Config, s *Server, log *zap.Logger) {
	srv := &http.Server{Addr: cfg.Addr, Handler: s.engine}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
