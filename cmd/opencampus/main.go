package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/opencampus/opencampus/internal/account"
	"github.com/opencampus/opencampus/internal/clock"
	"github.com/opencampus/opencampus/internal/config"
	"github.com/opencampus/opencampus/internal/course"
	"github.com/opencampus/opencampus/internal/enrollment"
	"github.com/opencampus/opencampus/internal/gateway"
	"github.com/opencampus/opencampus/internal/gateway/razorpay"
	"github.com/opencampus/opencampus/internal/locking"
	"github.com/opencampus/opencampus/internal/migration"
	"github.com/opencampus/opencampus/internal/observability"
	"github.com/opencampus/opencampus/internal/payment"
	"github.com/opencampus/opencampus/internal/progress"
	"github.com/opencampus/opencampus/internal/seed"
	"github.com/opencampus/opencampus/internal/server"
	"github.com/opencampus/opencampus/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		locking.Module,

		gateway.Module,
		razorpay.Module,
		account.Module,
		course.Module,
		payment.Module,
		enrollment.Module,
		progress.Module,

		migration.Module,
		seed.Module,
		server.Module,
	)
	app.Run()
}

func registerSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
