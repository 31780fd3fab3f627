package post

import (
	"time"

	"github.com/joshuahale/portfolio-backend/internal/domain/post"
	"github.com/joshuahale/portfolio-backend/internal/shared/errors"
	"github.com/joshuahale/portfolio-backend/internal/shared/logger"
	"github.com/joshuahale/portfolio-backend/internal/shared/services/markdown"
)

// PostDTO is the blog-post representation returned to the HTTP layer.
// ContentHTML is only populated on single-post reads.
type PostDTO struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Content     string `json:"content"`
	ContentHTML string `json:"content_html,omitempty"`
	HeroImage   string `json:"hero_image,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type CreateCommand struct {
	Title     string
	Slug      string
	Content   string
	HeroImage string
}

type UpdateCommand struct {
	Title     string
	Content   string
	HeroImage string
}

type Service struct {
	posts    post.Repository
	renderer markdown.MarkdownService
	logger   logger.Interface
}

func NewService(posts post.Repository, renderer markdown.MarkdownService, log logger.Interface) *Service {
	return &Service{
		posts:    posts,
		renderer: renderer,
		logger:   log,
	}
}

func (s *Service) Create(cmd CreateCommand) (*PostDTO, error) {
	newPost, err := post.NewPost(cmd.Title, cmd.Slug, cmd.Content, cmd.HeroImage)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.posts.Create(newPost); err != nil {
		return nil, err
	}

	s.logger.Infow("post created", "post_id", newPost.ID, "slug", newPost.Slug)
	return s.toDTO(newPost, false), nil
}

// GetBySlug returns a single post with its markdown rendered to sanitized HTML.
func (s *Service) GetBySlug(slug string) (*PostDTO, error) {
	p, err := s.posts.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	return s.toDTO(p, true), nil
}

func (s *Service) List(page, pageSize int) ([]*PostDTO, int64, error) {
	offset := (page - 1) * pageSize
	posts, total, err := s.posts.List(offset, pageSize)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]*PostDTO, len(posts))
	for i, p := range posts {
		dtos[i] = s.toDTO(p, false)
	}
	return dtos, total, nil
}

func (s *Service) Update(slug string, cmd UpdateCommand) (*PostDTO, error) {
	p, err := s.posts.GetBySlug(slug)
	if err != nil {
		return nil, err
	}

	if err := p.Update(cmd.Title, cmd.Content, cmd.HeroImage); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.posts.Update(p); err != nil {
		return nil, err
	}

	return s.toDTO(p, false), nil
}

func (s *Service) Delete(slug string) error {
	p, err := s.posts.GetBySlug(slug)
	if err != nil {
		return err
	}

	if err := s.posts.Delete(p.ID); err != nil {
		return err
	}
	s.logger.Infow("post deleted", "post_id", p.ID, "slug", p.Slug)
	return nil
}

func (s *Service) toDTO(p *post.Post, renderHTML bool) *PostDTO {
	dto := &PostDTO{
		ID:        p.ID,
		Title:     p.Title,
		Slug:      p.Slug,
		Content:   p.Content,
		HeroImage: p.HeroImage,
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.UTC().Format(time.RFC3339),
	}

	if renderHTML {
		html, err := s.renderer.ToHTMLSanitized(p.Content)
		if err != nil {
			// The raw markdown is still served; rendering is best effort.
			s.logger.Warnw("failed to render post content", "post_id", p.ID, "error", err)
		} else {
			dto.ContentHTML = html
		}
	}

	return dto
}
