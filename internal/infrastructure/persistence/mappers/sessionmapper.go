package mappers

import (
	"github.com/joshuahale/portfolio-backend/internal/domain/user"
	"github.com/joshuahale/portfolio-backend/internal/infrastructure/persistence/models"
)

// SessionMapper handles the conversion between Session domain entities and persistence models.
type SessionMapper interface {
	// ToModel converts a domain entity to a persistence model.
	ToModel(entity *user.Session) *models.SessionModel

	// ToDomain converts a persistence model to a domain entity.
	ToDomain(model *models.SessionModel) *user.Session
}

// SessionMapperImpl is the concrete implementation of SessionMapper.
type SessionMapperImpl struct{}

// NewSessionMapper creates a new SessionMapper.
func NewSessionMapper() SessionMapper {
	return &SessionMapperImpl{}
}

// ToModel converts a domain entity to a persistence model.
func (m *SessionMapperImpl) ToModel(entity *user.Session) *models.SessionModel {
	if entity == nil {
		return nil
	}
	return &models.SessionModel{
		ID:        entity.ID,
		Token:     entity.Token,
		UserID:    entity.UserID,
		UserAgent: entity.UserAgent,
		IPAddress: entity.IPAddress,
		ExpiresAt: entity.ExpiresAt,
		CreatedAt: entity.CreatedAt,
	}
}

// ToDomain converts a persistence model to a domain entity.
func (m *SessionMapperImpl) ToDomain(model *models.SessionModel) *user.Session {
	if model == nil {
		return nil
	}
	return &user.Session{
		ID:        model.ID,
		Token:     model.Token,
		UserID:    model.UserID,
		UserAgent: model.UserAgent,
		IPAddress: model.IPAddress,
		ExpiresAt: model.ExpiresAt,
		CreatedAt: model.CreatedAt,
	}
}
