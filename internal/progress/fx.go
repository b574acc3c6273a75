package progress

import (
	"go.uber.org/fx"

	"github.com/opencampus/opencampus/internal/progress/repository"
	"github.com/opencampus/opencampus/internal/progress/service"
)

var Module = fx.Module("progress.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
