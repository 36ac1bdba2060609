package invoice

import (
	"go.uber.org/fx"

	"github.com/smallbiznis/factura/internal/invoice/repository"
	"github.com/smallbiznis/factura/internal/invoice/service"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
