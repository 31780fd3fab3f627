package mappers

import (
	"github.com/joshuahale/portfolio-backend/internal/domain/user"
	"github.com/joshuahale/portfolio-backend/internal/infrastructure/persistence/models"
)

// UserMapper handles the conversion between User domain entities and persistence models.
type UserMapper interface {
	ToModel(entity *user.User) *models.UserModel
	ToDomain(model *models.UserModel) *user.User
}

// UserMapperImpl is the concrete implementation of UserMapper.
type UserMapperImpl struct{}

// NewUserMapper creates a new UserMapper.
func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

// ToModel converts a domain entity to a persistence model.
func (m *UserMapperImpl) ToModel(entity *user.User) *models.UserModel {
	if entity == nil {
		return nil
	}
	return &models.UserModel{
		ID:           entity.ID,
		Email:        entity.Email,
		Username:     entity.Username,
		PasswordHash: entity.PasswordHash,
		Active:       entity.Active,
		LastLoginAt:  entity.LastLoginAt,
		CreatedAt:    entity.CreatedAt,
		UpdatedAt:    entity.UpdatedAt,
	}
}

// ToDomain converts a persistence model to a domain entity.
func (m *UserMapperImpl) ToDomain(model *models.UserModel) *user.User {
	if model == nil {
		return nil
	}
	return &user.User{
		ID:           model.ID,
		Email:        model.Email,
		Username:     model.Username,
		PasswordHash: model.PasswordHash,
		Active:       model.Active,
		LastLoginAt:  model.LastLoginAt,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}
