package locking

import (
	"context"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/opencampus/opencampus/internal/config"
)

var Module = fx.Module("locking",
	fx.Provide(provideLocker),
)

func provideLocker(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) Locker {
	if cfg.RedisAddr == "" {
		log.Named("locking").Info("using in-process lock")
		return NewKeyedMutex()
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	lc.Append(fx.StopHook(func(context.Context) error {
		return client.Close()
	}))
	log.Named("locking").Info("using redis lock", zap.String("addr", cfg.RedisAddr))
	return NewRedisLocker(client)
}
