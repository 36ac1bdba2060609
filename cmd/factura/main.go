package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/smallbiznis/factura/internal/config"
	"github.com/smallbiznis/factura/internal/export"
	"github.com/smallbiznis/factura/internal/invoice"
	"github.com/smallbiznis/factura/internal/invoicetemplate"
	"github.com/smallbiznis/factura/internal/observability/logger"
	"github.com/smallbiznis/factura/internal/seed"
	"github.com/smallbiznis/factura/internal/server"
	"github.com/smallbiznis/factura/pkg/db"
)

func newSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(newSnowflakeNode),
		db.Module,

		invoice.Module,
		invoicetemplate.Module,
		export.Module,

		fx.Provide(server.NewEngine),
		fx.Provide(server.NewServer),
		fx.Invoke(func(conn *gorm.DB, node *snowflake.Node) error {
			return seed.EnsureDefaults(conn, node)
		}),
		fx.Invoke(func(s *server.Server) {
			s.RegisterAPIRoutes()
		}),
		fx.Invoke(server.RunHTTP),
	)
	app.Run()
}
