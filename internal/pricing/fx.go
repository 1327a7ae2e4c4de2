package pricing

import (
	"github.com/castbooklabs/castbook/internal/pricing/repository"
	"github.com/castbooklabs/castbook/internal/pricing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("pricing.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
