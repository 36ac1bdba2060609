package invoicetemplate

import (
	"go.uber.org/fx"

	"github.com/smallbiznis/factura/internal/invoicetemplate/repository"
	"github.com/smallbiznis/factura/internal/invoicetemplate/service"
)

var Module = fx.Module("invoicetemplate.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
