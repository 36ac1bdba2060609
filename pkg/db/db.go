package db

import (
	"go.uber.org/fx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/smallbiznis/factura/internal/config"
	invoicedomain "github.com/smallbiznis/factura/internal/invoice/domain"
	tmpldomain "github.com/smallbiznis/factura/internal/invoicetemplate/domain"
)

// Open connects to the database and applies the schema.
func Open(cfg *config.Config) (*gorm.DB, error) {
	conn, err := gorm.Open(sqlite.Open(cfg.DatabaseDSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := conn.AutoMigrate(
		&invoicedomain.Company{},
		&invoicedomain.Currency{},
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceItem{},
		&tmpldomain.Template{},
	); err != nil {
		return nil, err
	}
	return conn, nil
}

var Module = fx.Module("db",
	fx.Provide(Open),
)
