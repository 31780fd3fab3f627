package post

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Post is a blog entry. Content is stored as markdown and rendered to
// sanitized HTML at read time.
type Post struct {
	ID        uint
	Title     string
	Slug      string
	Content   string
	HeroImage string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewPost(title, slug, content, heroImage string) (*Post, error) {
	title = strings.TrimSpace(title)
	slug = strings.TrimSpace(slug)

	if title == "" || len(title) > 200 {
		return nil, fmt.Errorf("title must be between 1 and 200 characters")
	}
	if !slugPattern.MatchString(slug) || len(slug) > 200 {
		return nil, fmt.Errorf("slug must be lowercase alphanumeric with hyphens")
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("content is required")
	}
	if len(heroImage) > 500 {
		return nil, fmt.Errorf("hero image URL must not exceed 500 characters")
	}

	now := time.Now()
	return &Post{
		Title:     title,
		Slug:      slug,
		Content:   content,
		HeroImage: heroImage,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Update replaces the mutable fields and bumps UpdatedAt.
func (p *Post) Update(title, content, heroImage string) error {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > 200 {
		return fmt.Errorf("title must be between 1 and 200 characters")
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("content is required")
	}
	if len(heroImage) > 500 {
		return fmt.Errorf("hero image URL must not exceed 500 characters")
	}

	p.Title = title
	p.Content = content
	p.HeroImage = heroImage
	p.UpdatedAt = time.Now()
	return nil
}

type Repository interface {
	Create(post *Post) error
	GetByID(id uint) (*Post, error)
	GetBySlug(slug string) (*Post, error)
	List(offset, limit int) ([]*Post, int64, error)
	Update(post *Post) error
	Delete(id uint) error
}
