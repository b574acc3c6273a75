package course

import (
	"go.uber.org/fx"

	"github.com/opencampus/opencampus/internal/course/repository"
	"github.com/opencampus/opencampus/internal/course/service"
)

var Module = fx.Module("course.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
