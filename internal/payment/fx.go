package payment

import (
	"github.com/castbooklabs/castbook/internal/payment/adapters/stripe"
	"github.com/castbooklabs/castbook/internal/payment/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.gateway",
	fx.Provide(func(g *stripe.Gateway) domain.Gateway { return g }),
	fx.Provide(stripe.New),
)
