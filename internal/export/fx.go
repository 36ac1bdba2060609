package export

import (
	"go.uber.org/fx"

	"github.com/smallbiznis/factura/internal/config"
	invoicedomain "github.com/smallbiznis/factura/internal/invoice/domain"
	tmpldomain "github.com/smallbiznis/factura/internal/invoicetemplate/domain"
)

var Module = fx.Module("export.service",
	fx.Provide(func(cfg *config.Config) Converter {
		return NewWkhtmltopdfConverter(cfg.PDFEngine)
	}),
	fx.Provide(func(invoices invoicedomain.Service) InvoiceStore { return invoices }),
	fx.Provide(func(templates tmpldomain.Service) TemplateStore { return templates }),
	fx.Provide(NewService),
)
