package migration

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	accountdomain "github.com/opencampus/opencampus/internal/account/domain"
	"github.com/opencampus/opencampus/internal/config"
	coursedomain "github.com/opencampus/opencampus/internal/course/domain"
	enrollmentdomain "github.com/opencampus/opencampus/internal/enrollment/domain"
	paymentdomain "github.com/opencampus/opencampus/internal/payment/domain"
	progressdomain "github.com/opencampus/opencampus/internal/progress/domain"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		// The versioned SQL migrations target postgres. Other dialects
		// (sqlite for local development) fall back to schema sync from
		// the gorm models.
		if cfg.DBType != "postgres" {
			return conn.AutoMigrate(
				&accountdomain.Account{},
				&coursedomain.Course{},
				&coursedomain.CourseVideo{},
				&paymentdomain.PaymentRecord{},
				&enrollmentdomain.Enrollment{},
				&progressdomain.VideoProgress{},
				&progressdomain.Resume{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
