package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/opencampus/opencampus/internal/clock"
	"github.com/opencampus/opencampus/internal/course/domain"
	"github.com/opencampus/opencampus/pkg/db/pagination"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("course.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (domain.Course, error) {
	course, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Course{}, err
	}
	if course == nil {
		return domain.Course{}, domain.ErrNotFound
	}
	return *course, nil
}

func (s *Service) List(ctx context.Context, req domain.ListCoursesRequest) (domain.ListCoursesResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	items, err := s.repo.List(ctx, s.db, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListCoursesResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(course *domain.Course) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        course.ID.String(),
			CreatedAt: course.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	courses := make([]domain.Course, 0, len(items))
	for _, item := range items {
		courses = append(courses, *item)
	}

	return domain.ListCoursesResponse{
		PageInfo: *pageInfo,
		Courses:  courses,
	}, nil
}

func (s *Service) Create(ctx context.Context, course domain.Course) (domain.Course, error) {
	if strings.TrimSpace(course.Title) == "" {
		return domain.Course{}, domain.ErrInvalidTitle
	}
	if course.Price < 0 {
		return domain.Course{}, domain.ErrInvalidPrice
	}
	if course.DiscountPrice < 0 || course.DiscountPrice > course.Price {
		return domain.Course{}, domain.ErrInvalidDiscount
	}

	now := s.clock.Now()
	course.ID = s.genID.Generate()
	course.CreatedAt = now
	course.UpdatedAt = now
	if course.Currency == "" {
		course.Currency = "INR"
	}
	for i := range course.Videos {
		course.Videos[i].ID = s.genID.Generate()
		course.Videos[i].CourseID = course.ID
		course.Videos[i].Position = i
	}

	if err := s.repo.Insert(ctx, s.db, &course); err != nil {
		return domain.Course{}, err
	}
	return course, nil
}
