package db

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("db",
	fx.Provide(func(cfg Config) (*gorm.DB, error) {
		return Open(cfg)
	}),
)
