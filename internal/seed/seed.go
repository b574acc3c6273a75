package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	accountdomain "github.com/opencampus/opencampus/internal/account/domain"
	"github.com/opencampus/opencampus/internal/account/password"
	accountrepo "github.com/opencampus/opencampus/internal/account/repository"
	"github.com/opencampus/opencampus/internal/config"
	coursedomain "github.com/opencampus/opencampus/internal/course/domain"
)

const (
	demoInstructorEmail = "instructor@opencampus.dev"
	demoStudentEmail    = "student@opencampus.dev"
	demoPassword        = "opencampus"
)

var Module = fx.Module("seed",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, log *zap.Logger) error {
		if !cfg.SeedDemoData {
			return nil
		}
		if err := EnsureDemoData(conn); err != nil {
			return err
		}
		log.Info("demo data seeded")
		return nil
	}),
)

// EnsureDemoData seeds demo accounts and courses for local development.
// Idempotent: existing rows are left untouched.
func EnsureDemoData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		instructor, err := ensureAccount(ctx, tx, node, "Demo Instructor", demoInstructorEmail, accountdomain.RoleInstructor)
		if err != nil {
			return err
		}
		if _, err := ensureAccount(ctx, tx, node, "Demo Student", demoStudentEmail, accountdomain.RoleStudent); err != nil {
			return err
		}
		if err := ensureCourse(ctx, tx, node, instructor.ID, "Introduction to Go", true, 0, 0); err != nil {
			return err
		}
		return ensureCourse(ctx, tx, node, instructor.ID, "Distributed Systems in Practice", false, 99900, 49900)
	})
}

func ensureAccount(ctx context.Context, tx *gorm.DB, node *snowflake.Node, name, email, role string) (accountdomain.Account, error) {
	existing, err := accountrepo.Provide().FindByEmail(ctx, tx, email)
	if err != nil {
		return accountdomain.Account{}, err
	}
	if existing != nil {
		return *existing, nil
	}

	hash, err := password.Hash(demoPassword)
	if err != nil {
		return accountdomain.Account{}, err
	}

	now := time.Now().UTC()
	account := accountdomain.Account{
		ID:           node.Generate(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := tx.WithContext(ctx).Create(&account).Error; err != nil {
		return accountdomain.Account{}, err
	}
	return account, nil
}

func ensureCourse(ctx context.Context, tx *gorm.DB, node *snowflake.Node, instructorID snowflake.ID, title string, free bool, price, discount int64) error {
	var existing coursedomain.Course
	err := tx.WithContext(ctx).Where("title = ?", title).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	now := time.Now().UTC()
	course := coursedomain.Course{
		ID:            node.Generate(),
		Title:         title,
		Description:   "Seeded demo course.",
		InstructorID:  instructorID,
		Thumbnail:     datatypes.JSONMap{},
		Price:         price,
		DiscountPrice: discount,
		IsFree:        free,
		Currency:      "INR",
		Metadata:      datatypes.JSONMap{"seeded": true},
		CreatedAt:     now,
		UpdatedAt:     now,
		Videos: []coursedomain.CourseVideo{
			{ID: node.Generate(), Title: "Welcome", PublicID: "demo_welcome", URL: "https://videos.opencampus.dev/demo/welcome", Position: 0},
			{ID: node.Generate(), Title: "Getting Started", PublicID: "demo_started", URL: "https://videos.opencampus.dev/demo/getting-started", Position: 1},
		},
	}
	for i := range course.Videos {
		course.Videos[i].CourseID = course.ID
	}
	return tx.WithContext(ctx).Create(&course).Error
}
