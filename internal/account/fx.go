package account

import (
	"go.uber.org/fx"

	"github.com/opencampus/opencampus/internal/account/repository"
	"github.com/opencampus/opencampus/internal/account/service"
)

var Module = fx.Module("account.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
