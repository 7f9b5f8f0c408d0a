package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/noah-isme/presensi-admin-api/internal/models"
)

// StudentFilter scopes student listing queries. A PageSize of zero disables
// pagination and returns the full matching set, which the tolerance filters
// rely on.
type StudentFilter struct {
	Search   string
	Page     int
	PageSize int
}

// UserRepository exposes persistence helpers for user records.
type UserRepository interface {
	ListStudents(ctx context.Context, filter StudentFilter) ([]models.User, int64, error)
	GetStudentByID(ctx context.Context, id uint) (models.User, error)
	GetByID(ctx context.Context, id uint) (models.User, error)
	FindByIdentifier(ctx context.Context, identifier string) (models.User, error)
	ListByIDs(ctx context.Context, ids []uint) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	ExistsByEmailOrNIM(ctx context.Context, email, nim string) (bool, error)
	Delete(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository constructs the user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) ListStudents(ctx context.Context, filter StudentFilter) ([]models.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", models.RoleStudent)

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(full_name) LIKE ? OR LOWER(nim) LIKE ?", like, like)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("full_name ASC")

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Limit(filter.PageSize).Offset((page - 1) * filter.PageSize)
	}

	var students []models.User
	if err := query.Find(&students).Error; err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

func (r *userRepository) GetStudentByID(ctx context.Context, id uint) (models.User, error) {
	var student models.User
	err := r.db.WithContext(ctx).
		Where("user_id = ?", id).
		Where("role = ?", models.RoleStudent).
		First(&student).Error
	if err != nil {
		return models.User{}, err
	}

	return student, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("user_id = ?", id).First(&user).Error; err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (r *userRepository) FindByIdentifier(ctx context.Context, identifier string) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("full_name = ? OR nim = ? OR email = ?", identifier, identifier, identifier).
		First(&user).Error
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (r *userRepository) ListByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var users []models.User
	if err := r.db.WithContext(ctx).Where("user_id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) ExistsByEmailOrNIM(ctx context.Context, email, nim string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ? OR nim = ?", email, nim).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// Delete soft deletes the user; gorm.DeletedAt keeps the row out of every
// query without losing attendance history tied to it.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where("user_id = ?", id).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
