package catalog

import (
	"github.com/smallbiznis/facturador/internal/catalog/repository"
	"github.com/smallbiznis/facturador/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Invoke(func(stores *repository.Stores) error {
		return stores.EnsureInitialized()
	}),
)
