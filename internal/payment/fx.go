package payment

import (
	"go.uber.org/fx"

	"github.com/opencampus/opencampus/internal/payment/repository"
)

var Module = fx.Module("payment.store",
	fx.Provide(repository.Provide),
)
