package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/opencampus/opencampus/internal/clock"
	coursedomain "github.com/opencampus/opencampus/internal/course/domain"
	"github.com/opencampus/opencampus/internal/progress/domain"
)

const completionThreshold = 90

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Repo      domain.Repository
	CourseSvc coursedomain.Service
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	repo      domain.Repository
	courseSvc coursedomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("progress.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		repo:      p.Repo,
		courseSvc: p.CourseSvc,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (domain.CourseProgress, error) {
	if req.StudentID == 0 || req.CourseID == 0 || req.VideoID == 0 {
		return domain.CourseProgress{}, domain.ErrInvalidInput
	}

	course, err := s.courseSvc.GetByID(ctx, req.CourseID)
	if err != nil {
		return domain.CourseProgress{}, err
	}

	found := false
	for _, video := range course.Videos {
		if video.ID == req.VideoID {
			found = true
			break
		}
	}
	if !found {
		return domain.CourseProgress{}, domain.ErrVideoNotFound
	}

	percent := clamp(req.Percent, 0, 100)
	timestamp := req.LastTimestamp
	if timestamp < 0 {
		timestamp = 0
	}
	now := s.clock.Now()

	record, err := s.repo.FindVideo(ctx, s.db, req.StudentID, req.CourseID, req.VideoID)
	if err != nil {
		return domain.CourseProgress{}, err
	}
	if record == nil {
		record = &domain.VideoProgress{
			ID:        s.genID.Generate(),
			StudentID: req.StudentID,
			CourseID:  req.CourseID,
			VideoID:   req.VideoID,
		}
	}
	record.Percent = percent
	record.LastTimestamp = timestamp
	record.Completed = percent >= completionThreshold
	record.UpdatedAt = now
	if err := s.repo.SaveVideo(ctx, s.db, record); err != nil {
		return domain.CourseProgress{}, err
	}

	resume, err := s.repo.FindResume(ctx, s.db, req.StudentID, req.CourseID)
	if err != nil {
		return domain.CourseProgress{}, err
	}
	if resume == nil {
		resume = &domain.Resume{
			ID:        s.genID.Generate(),
			StudentID: req.StudentID,
			CourseID:  req.CourseID,
		}
	}
	resume.VideoID = req.VideoID
	resume.LastTimestamp = timestamp
	resume.UpdatedAt = now
	if err := s.repo.SaveResume(ctx, s.db, resume); err != nil {
		return domain.CourseProgress{}, err
	}

	return s.buildCourseProgress(ctx, course, req.StudentID)
}

func (s *Service) Get(ctx context.Context, studentID, courseID snowflake.ID) (domain.CourseProgress, error) {
	if studentID == 0 || courseID == 0 {
		return domain.CourseProgress{}, domain.ErrInvalidInput
	}

	course, err := s.courseSvc.GetByID(ctx, courseID)
	if err != nil {
		return domain.CourseProgress{}, err
	}
	return s.buildCourseProgress(ctx, course, studentID)
}

// buildCourseProgress joins the course's video list with the student's
// progress rows. Every course video appears in the result, watched or not.
func (s *Service) buildCourseProgress(ctx context.Context, course coursedomain.Course, studentID snowflake.ID) (domain.CourseProgress, error) {
	records, err := s.repo.ListVideos(ctx, s.db, studentID, course.ID)
	if err != nil {
		return domain.CourseProgress{}, err
	}
	byVideo := make(map[snowflake.ID]domain.VideoProgress, len(records))
	for _, record := range records {
		byVideo[record.VideoID] = record
	}

	views := make([]domain.VideoView, 0, len(course.Videos))
	completed := 0
	for _, video := range course.Videos {
		view := domain.VideoView{
			VideoID:  video.ID,
			Title:    video.Title,
			URL:      video.URL,
			Position: video.Position,
		}
		if record, ok := byVideo[video.ID]; ok {
			view.Percent = record.Percent
			view.LastTimestamp = record.LastTimestamp
			view.Completed = record.Completed
		}
		if view.Completed {
			completed++
		}
		views = append(views, view)
	}

	result := domain.CourseProgress{
		CourseID:        course.ID,
		Videos:          views,
		CompletedVideos: completed,
		CourseCompleted: len(views) > 0 && completed == len(views),
	}

	resume, err := s.repo.FindResume(ctx, s.db, studentID, course.ID)
	if err != nil {
		return domain.CourseProgress{}, err
	}
	if resume != nil {
		result.Resume = &domain.ResumeView{
			VideoID:       resume.VideoID,
			LastTimestamp: resume.LastTimestamp,
		}
	}
	return result, nil
}
