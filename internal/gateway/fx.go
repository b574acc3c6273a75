package gateway

import (
	"go.uber.org/fx"

	"github.com/opencampus/opencampus/internal/config"
)

var Module = fx.Module("gateway",
	fx.Provide(provideVerifier),
)

func provideVerifier(cfg config.Config) *SignatureVerifier {
	return NewSignatureVerifier(cfg.GatewaySecret, cfg.GatewayWebhookSecret)
}
