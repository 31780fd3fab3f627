package mappers

import (
	"github.com/joshuahale/portfolio-backend/internal/domain/contact"
	"github.com/joshuahale/portfolio-backend/internal/infrastructure/persistence/models"
)

// ContactMessageMapper handles the conversion between contact Message domain
// entities and persistence models.
type ContactMessageMapper interface {
	ToModel(entity *contact.Message) *models.ContactMessageModel
	ToDomain(model *models.ContactMessageModel) *contact.Message
}

// ContactMessageMapperImpl is the concrete implementation of ContactMessageMapper.
type ContactMessageMapperImpl struct{}

// NewContactMessageMapper creates a new ContactMessageMapper.
func NewContactMessageMapper() ContactMessageMapper {
	return &ContactMessageMapperImpl{}
}

// ToModel converts a domain entity to a persistence model.
func (m *ContactMessageMapperImpl) ToModel(entity *contact.Message) *models.ContactMessageModel {
	if entity == nil {
		return nil
	}
	return &models.ContactMessageModel{
		ID:      entity.ID,
		Name:    entity.Name,
		Email:   entity.Email,
		Subject: entity.Subject,
		Body:    entity.Body,
		SentAt:  entity.SentAt,
	}
}

// ToDomain converts a persistence model to a domain entity.
func (m *ContactMessageMapperImpl) ToDomain(model *models.ContactMessageModel) *contact.Message {
	if model == nil {
		return nil
	}
	return &contact.Message{
		ID:      model.ID,
		Name:    model.Name,
		Email:   model.Email,
		Subject: model.Subject,
		Body:    model.Body,
		SentAt:  model.SentAt,
	}
}
