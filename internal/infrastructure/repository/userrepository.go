package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/joshuahale/portfolio-backend/internal/domain/user"
	"github.com/joshuahale/portfolio-backend/internal/infrastructure/persistence/mappers"
	"github.com/joshuahale/portfolio-backend/internal/infrastructure/persistence/models"
	"github.com/joshuahale/portfolio-backend/internal/shared/errors"
)

type UserRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{
		db:     db,
		mapper: mappers.NewUserMapper(),
	}
}

func (r *UserRepository) Create(u *user.User) error {
	model := r.mapper.ToModel(u)
	if err := r.db.Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("email or username already in use")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	u.ID = model.ID
	return nil
}

func (r *UserRepository) GetByID(id uint) (*user.User, error) {
	var model models.UserModel
	err := r.db.Where("id = ?", id).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("user not found")
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *UserRepository) GetByEmailOrUsername(login string) (*user.User, error) {
	var model models.UserModel
	err := r.db.Where("email = ? OR username = ?", user.NormalizeEmail(login), login).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("user not found")
		}
		return nil, fmt.Errorf("failed to get user by email or username: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.UserModel{}).Where("email = ?", user.NormalizeEmail(email)).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return count > 0, nil
}

func (r *UserRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.db.Model(&models.UserModel{}).Where("username = ?", username).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check username existence: %w", err)
	}
	return count > 0, nil
}

func (r *UserRepository) Update(u *user.User) error {
	model := r.mapper.ToModel(u)
	result := r.db.Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("user not found")
	}
	return nil
}
