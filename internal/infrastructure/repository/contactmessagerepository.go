package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/joshuahale/portfolio-backend/internal/domain/contact"
	"github.com/joshuahale/portfolio-backend/internal/infrastructure/persistence/mappers"
	"github.com/joshuahale/portfolio-backend/internal/infrastructure/persistence/models"
	"github.com/joshuahale/portfolio-backend/internal/shared/errors"
)

type ContactMessageRepository struct {
	db     *gorm.DB
	mapper mappers.ContactMessageMapper
}

func NewContactMessageRepository(db *gorm.DB) contact.Repository {
	return &ContactMessageRepository{
		db:     db,
		mapper: mappers.NewContactMessageMapper(),
	}
}

func (r *ContactMessageRepository) Create(msg *contact.Message) error {
	model := r.mapper.ToModel(msg)
	if err := r.db.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}
	msg.ID = model.ID
	return nil
}

func (r *ContactMessageRepository) GetByID(id uint) (*contact.Message, error) {
	var model models.ContactMessageModel
	err := r.db.Where("id = ?", id).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("contact message not found")
		}
		return nil, fmt.Errorf("failed to get contact message by ID: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *ContactMessageRepository) List(offset, limit int) ([]*contact.Message, int64, error) {
	var total int64
	if err := r.db.Model(&models.ContactMessageModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count contact messages: %w", err)
	}

	var messageModels []models.ContactMessageModel
	err := r.db.Order("sent_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&messageModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contact messages: %w", err)
	}

	messages := make([]*contact.Message, len(messageModels))
	for i := range messageModels {
		messages[i] = r.mapper.ToDomain(&messageModels[i])
	}
	return messages, total, nil
}
