package talent

import (
	"github.com/castbooklabs/castbook/internal/talent/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("talent",
	fx.Provide(repository.Provide),
)
