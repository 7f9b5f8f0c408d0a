package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/presensi-admin-api/internal/models"
)

// ErrPermissionNotPending indicates the conditional decision update matched
// no pending row, meaning the request was already decided.
var ErrPermissionNotPending = errors.New("permission request is not pending")

// PermissionFilter scopes the permission request listing.
type PermissionFilter struct {
	Status   string
	Page     int
	PageSize int
}

// PermissionRepository exposes persistence helpers for permission requests.
type PermissionRepository interface {
	ListApprovedByEnrollmentIDs(ctx context.Context, enrollmentIDs []uint) ([]models.Permission, error)
	List(ctx context.Context, filter PermissionFilter) ([]models.Permission, int64, error)
	GetByID(ctx context.Context, id uint) (models.Permission, error)
	SetDecision(ctx context.Context, id uint, status string, adminID uint, decidedAt time.Time) error
}

type permissionRepository struct {
	db *gorm.DB
}

// NewPermissionRepository constructs the permission repository.
func NewPermissionRepository(db *gorm.DB) PermissionRepository {
	return &permissionRepository{db: db}
}

func (r *permissionRepository) ListApprovedByEnrollmentIDs(ctx context.Context, enrollmentIDs []uint) ([]models.Permission, error) {
	if len(enrollmentIDs) == 0 {
		return nil, nil
	}

	var rows []models.Permission
	err := r.db.WithContext(ctx).
		Where("enrollment_id IN ?", enrollmentIDs).
		Where("status = ?", models.PermissionStatusApproved).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *permissionRepository) List(ctx context.Context, filter PermissionFilter) ([]models.Permission, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Permission{})

	if filter.Status != "" && filter.Status != "all" {
		query = query.Where("status = ?", filter.Status)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("submitted_at DESC")

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Limit(filter.PageSize).Offset((page - 1) * filter.PageSize)
	}

	var rows []models.Permission
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func (r *permissionRepository) GetByID(ctx context.Context, id uint) (models.Permission, error) {
	var permission models.Permission
	if err := r.db.WithContext(ctx).Where("permission_id = ?", id).First(&permission).Error; err != nil {
		return models.Permission{}, err
	}

	return permission, nil
}

// SetDecision moves a pending request to approved or rejected. The update is
// conditional on status still being pending; zero affected rows means the
// request was already decided and the transition is refused.
func (r *permissionRepository) SetDecision(ctx context.Context, id uint, status string, adminID uint, decidedAt time.Time) error {
	update := r.db.WithContext(ctx).Model(&models.Permission{}).
		Where("permission_id = ?", id).
		Where("status = ?", models.PermissionStatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"approved_at": decidedAt,
			"approved_by": adminID,
		})
	if update.Error != nil {
		return update.Error
	}

	if update.RowsAffected == 0 {
		return ErrPermissionNotPending
	}

	return nil
}
