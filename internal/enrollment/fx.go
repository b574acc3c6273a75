package enrollment

import (
	"go.uber.org/fx"

	"github.com/opencampus/opencampus/internal/enrollment/repository"
	"github.com/opencampus/opencampus/internal/enrollment/service"
)

var Module = fx.Module("enrollment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
