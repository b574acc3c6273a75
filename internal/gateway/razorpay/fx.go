package razorpay

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/opencampus/opencampus/internal/config"
	"github.com/opencampus/opencampus/internal/gateway"
)

var Module = fx.Module("gateway.razorpay",
	fx.Provide(func(cfg config.Config, log *zap.Logger) (gateway.Client, error) {
		return New(Config{
			BaseURL: cfg.GatewayBaseURL,
			KeyID:   cfg.GatewayKeyID,
			Secret:  cfg.GatewaySecret,
		}, log)
	}),
)
