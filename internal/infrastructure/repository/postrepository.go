package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/joshuahale/portfolio-backend/internal/domain/post"
	"github.com/joshuahale/portfolio-backend/internal/infrastructure/persistence/mappers"
	"github.com/joshuahale/portfolio-backend/internal/infrastructure/persistence/models"
	"github.com/joshuahale/portfolio-backend/internal/shared/errors"
)

type PostRepository struct {
	db     *gorm.DB
	mapper mappers.PostMapper
}

func NewPostRepository(db *gorm.DB) post.Repository {
	return &PostRepository{
		db:     db,
		mapper: mappers.NewPostMapper(),
	}
}

func (r *PostRepository) Create(p *post.Post) error {
	model := r.mapper.ToModel(p)
	if err := r.db.Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("post slug already exists")
		}
		return fmt.Errorf("failed to create post: %w", err)
	}
	p.ID = model.ID
	return nil
}

func (r *PostRepository) GetByID(id uint) (*post.Post, error) {
	var model models.PostModel
	err := r.db.Where("id = ?", id).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("post not found")
		}
		return nil, fmt.Errorf("failed to get post by ID: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *PostRepository) GetBySlug(slug string) (*post.Post, error) {
	var model models.PostModel
	err := r.db.Where("slug = ?", slug).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("post not found")
		}
		return nil, fmt.Errorf("failed to get post by slug: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *PostRepository) List(offset, limit int) ([]*post.Post, int64, error) {
	var total int64
	if err := r.db.Model(&models.PostModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	var postModels []models.PostModel
	err := r.db.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&postModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}

	posts := make([]*post.Post, len(postModels))
	for i := range postModels {
		posts[i] = r.mapper.ToDomain(&postModels[i])
	}
	return posts, total, nil
}

func (r *PostRepository) Update(p *post.Post) error {
	model := r.mapper.ToModel(p)
	result := r.db.Save(model)
	if result.Error != nil {
		if errors.IsDuplicateError(result.Error) {
			return errors.NewConflictError("post slug already exists")
		}
		return fmt.Errorf("failed to update post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("post not found")
	}
	return nil
}

func (r *PostRepository) Delete(id uint) error {
	result := r.db.Where("id = ?", id).Delete(&models.PostModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("post not found")
	}
	return nil
}
