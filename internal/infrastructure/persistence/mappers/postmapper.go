package mappers

import (
	"github.com/joshuahale/portfolio-backend/internal/domain/post"
	"github.com/joshuahale/portfolio-backend/internal/infrastructure/persistence/models"
)

// PostMapper handles the conversion between Post domain entities and persistence models.
type PostMapper interface {
	ToModel(entity *post.Post) *models.PostModel
	ToDomain(model *models.PostModel) *post.Post
}

// PostMapperImpl is the concrete implementation of PostMapper.
type PostMapperImpl struct{}

// NewPostMapper creates a new PostMapper.
func NewPostMapper() PostMapper {
	return &PostMapperImpl{}
}

// ToModel converts a domain entity to a persistence model.
func (m *PostMapperImpl) ToModel(entity *post.Post) *models.PostModel {
	if entity == nil {
		return nil
	}
	return &models.PostModel{
		ID:        entity.ID,
		Title:     entity.Title,
		Slug:      entity.Slug,
		Content:   entity.Content,
		HeroImage: entity.HeroImage,
		CreatedAt: entity.CreatedAt,
		UpdatedAt: entity.UpdatedAt,
	}
}

// ToDomain converts a persistence model to a domain entity.
func (m *PostMapperImpl) ToDomain(model *models.PostModel) *post.Post {
	if model == nil {
		return nil
	}
	return &post.Post{
		ID:        model.ID,
		Title:     model.Title,
		Slug:      model.Slug,
		Content:   model.Content,
		HeroImage: model.HeroImage,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
