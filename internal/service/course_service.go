package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/noah-isme/presensi-admin-api/internal/models"
	"github.com/noah-isme/presensi-admin-api/internal/repository"
)

// CourseService lists courses for the dashboard course picker.
type CourseService interface {
	List(ctx context.Context) ([]models.Course, error)
}

type courseService struct {
	courses repository.CourseRepository
	logger  zerolog.Logger
}

// NewCourseService constructs the course service.
func NewCourseService(courses repository.CourseRepository, logger zerolog.Logger) CourseService {
	return &courseService{
		courses: courses,
		logger:  logger.With().Str("component", "course_service").Logger(),
	}
}

func (s *courseService) List(ctx context.Context) ([]models.Course, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, &StoreReadError{Table: "courses", Err: err}
	}

	return courses, nil
}
