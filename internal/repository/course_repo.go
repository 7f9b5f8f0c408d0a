package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/presensi-admin-api/internal/models"
)

// CourseRepository exposes persistence helpers for course records.
type CourseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	ListByIDs(ctx context.Context, ids []uint) ([]models.Course, error)
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository constructs the course repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) List(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := r.db.WithContext(ctx).Order("course_code ASC").Find(&courses).Error; err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *courseRepository) ListByIDs(ctx context.Context, ids []uint) ([]models.Course, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var courses []models.Course
	if err := r.db.WithContext(ctx).Where("course_id IN ?", ids).Find(&courses).Error; err != nil {
		return nil, err
	}

	return courses, nil
}
