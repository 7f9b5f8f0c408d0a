package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/presensi-admin-api/internal/models"
)

// EnrollmentRepository exposes persistence helpers for enrollment records.
type EnrollmentRepository interface {
	ListByUserID(ctx context.Context, userID uint, includeDeleted bool) ([]models.Enrollment, error)
	ListActiveByUserIDs(ctx context.Context, userIDs []uint) ([]models.Enrollment, error)
	ListByIDs(ctx context.Context, ids []uint) ([]models.Enrollment, error)
	ApplyReconciliation(ctx context.Context, userID uint, createCourseIDs, restoreIDs, removeIDs []uint) error
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository constructs the enrollment repository.
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) ListByUserID(ctx context.Context, userID uint, includeDeleted bool) ([]models.Enrollment, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !includeDeleted {
		query = query.Where("is_deleted = ?", false)
	}

	var enrollments []models.Enrollment
	if err := query.Find(&enrollments).Error; err != nil {
		return nil, err
	}

	return enrollments, nil
}

func (r *enrollmentRepository) ListActiveByUserIDs(ctx context.Context, userIDs []uint) ([]models.Enrollment, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	var enrollments []models.Enrollment
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Where("is_deleted = ?", false).
		Find(&enrollments).Error
	if err != nil {
		return nil, err
	}

	return enrollments, nil
}

// ListByIDs returns enrollment rows for the given identifiers, including
// soft-deleted ones so historical attendance and permission rows stay
// renderable.
func (r *enrollmentRepository) ListByIDs(ctx context.Context, ids []uint) ([]models.Enrollment, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var enrollments []models.Enrollment
	if err := r.db.WithContext(ctx).Where("enrollment_id IN ?", ids).Find(&enrollments).Error; err != nil {
		return nil, err
	}

	return enrollments, nil
}

// ApplyReconciliation persists a precomputed enrollment diff in a single
// transaction: new rows for createCourseIDs, is_deleted cleared for
// restoreIDs, is_deleted set for removeIDs.
func (r *enrollmentRepository) ApplyReconciliation(ctx context.Context, userID uint, createCourseIDs, restoreIDs, removeIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		for _, courseID := range createCourseIDs {
			enrollment := models.Enrollment{
				UserID:     userID,
				CourseID:   courseID,
				IsDeleted:  false,
				EnrolledAt: now,
			}
			if err := tx.Create(&enrollment).Error; err != nil {
				return err
			}
		}

		if len(restoreIDs) > 0 {
			err := tx.Model(&models.Enrollment{}).
				Where("enrollment_id IN ?", restoreIDs).
				Update("is_deleted", false).Error
			if err != nil {
				return err
			}
		}

		if len(removeIDs) > 0 {
			err := tx.Model(&models.Enrollment{}).
				Where("enrollment_id IN ?", removeIDs).
				Update("is_deleted", true).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}
