package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/opencampus/opencampus/internal/clock"
	"github.com/opencampus/opencampus/internal/course/domain"
	"github.com/opencampus/opencampus/internal/course/repository"
)

func setupService(t *testing.T) (domain.Service, *snowflake.Node, *clock.FakeClock) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Course{}, &domain.CourseVideo{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fake := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fake,
		Repo:  repository.Provide(),
	})
	return svc, node, fake
}

func TestCreateAssignsIDsAndPositions(t *testing.T) {
	svc, node, _ := setupService(t)

	created, err := svc.Create(context.Background(), domain.Course{
		Title:        "Systems Programming",
		InstructorID: node.Generate(),
		Price:        49900,
		Videos: []domain.CourseVideo{
			{Title: "Intro", PublicID: "v1", URL: "https://cdn/v1"},
			{Title: "Syscalls", PublicID: "v2", URL: "https://cdn/v2"},
		},
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "INR", created.Currency)
	require.Len(t, created.Videos, 2)
	for i, video := range created.Videos {
		assert.NotZero(t, video.ID)
		assert.Equal(t, created.ID, video.CourseID)
		assert.Equal(t, i, video.Position)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, node, _ := setupService(t)

	_, err := svc.Create(context.Background(), domain.Course{Title: "  ", InstructorID: node.Generate()})
	assert.ErrorIs(t, err, domain.ErrInvalidTitle)

	_, err = svc.Create(context.Background(), domain.Course{Title: "T", InstructorID: node.Generate(), Price: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	_, err = svc.Create(context.Background(), domain.Course{Title: "T", InstructorID: node.Generate(), Price: 100, DiscountPrice: 200})
	assert.ErrorIs(t, err, domain.ErrInvalidDiscount)
}

func TestGetByIDLoadsVideosInOrder(t *testing.T) {
	svc, node, _ := setupService(t)

	created, err := svc.Create(context.Background(), domain.Course{
		Title:        "Networking",
		InstructorID: node.Generate(),
		IsFree:       true,
		Videos: []domain.CourseVideo{
			{Title: "First", PublicID: "v1", URL: "https://cdn/v1"},
			{Title: "Second", PublicID: "v2", URL: "https://cdn/v2"},
			{Title: "Third", PublicID: "v3", URL: "https://cdn/v3"},
		},
	})
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, got.Videos, 3)
	assert.Equal(t, "First", got.Videos[0].Title)
	assert.Equal(t, "Second", got.Videos[1].Title)
	assert.Equal(t, "Third", got.Videos[2].Title)
}

func TestGetByIDNotFound(t *testing.T) {
	svc, node, _ := setupService(t)

	_, err := svc.GetByID(context.Background(), node.Generate())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListPaginatesWithCursor(t *testing.T) {
	svc, node, fake := setupService(t)

	for i := 0; i < 5; i++ {
		_, err := svc.Create(context.Background(), domain.Course{
			Title:        fmt.Sprintf("Course %d", i),
			InstructorID: node.Generate(),
			IsFree:       true,
		})
		require.NoError(t, err)
		fake.Advance(time.Minute)
	}

	first, err := svc.List(context.Background(), domain.ListCoursesRequest{PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, first.Courses, 2)
	assert.True(t, first.HasMore)
	require.NotEmpty(t, first.NextPageToken)

	second, err := svc.List(context.Background(), domain.ListCoursesRequest{PageSize: 2, PageToken: first.NextPageToken})
	require.NoError(t, err)
	assert.Len(t, second.Courses, 2)
	assert.True(t, second.HasMore)

	third, err := svc.List(context.Background(), domain.ListCoursesRequest{PageSize: 2, PageToken: second.NextPageToken})
	require.NoError(t, err)
	assert.Len(t, third.Courses, 1)
	assert.False(t, third.HasMore)

	seen := map[snowflake.ID]bool{}
	for _, page := range [][]domain.Course{first.Courses, second.Courses, third.Courses} {
		for _, course := range page {
			assert.False(t, seen[course.ID], "course repeated across pages")
			seen[course.ID] = true
		}
	}
}

func TestEffectiveCharge(t *testing.T) {
	free := domain.Course{IsFree: true, Price: 49900, DiscountPrice: 29900}
	assert.EqualValues(t, 0, free.EffectiveCharge())

	discounted := domain.Course{Price: 49900, DiscountPrice: 29900}
	assert.EqualValues(t, 29900, discounted.EffectiveCharge())

	list := domain.Course{Price: 49900}
	assert.EqualValues(t, 49900, list.EffectiveCharge())
}
