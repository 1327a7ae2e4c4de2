package observability

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func NewLogger() (*zap.Logger, error) {
	return zap.NewProduction()
}

var Module = fx.Module("observability",
	fx.Provide(NewLogger),
)
