package post

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuahale/portfolio-backend/internal/domain/post"
	"github.com/joshuahale/portfolio-backend/internal/shared/errors"
	"github.com/joshuahale/portfolio-backend/internal/shared/logger"
	"github.com/joshuahale/portfolio-backend/internal/shared/services/markdown"
)

type fakePostRepo struct {
	byID   map[uint]*post.Post
	nextID uint
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{byID: make(map[uint]*post.Post)}
}

func (r *fakePostRepo) Create(p *post.Post) error {
	for _, existing := range r.byID {
		if existing.Slug == p.Slug {
			return errors.NewConflictError("post slug already exists")
		}
	}
	r.nextID++
	p.ID = r.nextID
	r.byID[p.ID] = p
	return nil
}

func (r *fakePostRepo) GetByID(id uint) (*post.Post, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, errors.NewNotFoundError("post not found")
	}
	return p, nil
}

func (r *fakePostRepo) GetBySlug(slug string) (*post.Post, error) {
	for _, p := range r.byID {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, errors.NewNotFoundError("post not found")
}

func (r *fakePostRepo) List(offset, limit int) ([]*post.Post, int64, error) {
	all := make([]*post.Post, 0, len(r.byID))
	for _, p := range r.byID {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakePostRepo) Update(p *post.Post) error {
	r.byID[p.ID] = p
	return nil
}

func (r *fakePostRepo) Delete(id uint) error {
	if _, ok := r.byID[id]; !ok {
		return errors.NewNotFoundError("post not found")
	}
	delete(r.byID, id)
	return nil
}

func newPostService() (*Service, *fakePostRepo) {
	repo := newFakePostRepo()
	return NewService(repo, markdown.NewMarkdownService(), logger.NewLogger()), repo
}

func TestPostService_Create(t *testing.T) {
	svc, _ := newPostService()

	dto, err := svc.Create(CreateCommand{
		Title:   "Hello World",
		Slug:    "hello-world",
		Content: "# Welcome\n\nFirst post.",
	})
	require.NoError(t, err)

	assert.NotZero(t, dto.ID)
	assert.Equal(t, "hello-world", dto.Slug)
	assert.Empty(t, dto.ContentHTML)
	assert.NotEmpty(t, dto.CreatedAt)
}

func TestPostService_Create_InvalidSlug(t *testing.T) {
	svc, _ := newPostService()

	_, err := svc.Create(CreateCommand{Title: "Bad", Slug: "Not A Slug!", Content: "x"})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestPostService_Create_DuplicateSlug(t *testing.T) {
	svc, _ := newPostService()

	_, err := svc.Create(CreateCommand{Title: "One", Slug: "same", Content: "x"})
	require.NoError(t, err)

	_, err = svc.Create(CreateCommand{Title: "Two", Slug: "same", Content: "y"})
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

func TestPostService_GetBySlug_RendersHTML(t *testing.T) {
	svc, _ := newPostService()

	_, err := svc.Create(CreateCommand{
		Title:   "Hello",
		Slug:    "hello",
		Content: "# Heading\n\n<script>alert(1)</script>",
	})
	require.NoError(t, err)

	dto, err := svc.GetBySlug("hello")
	require.NoError(t, err)

	assert.Contains(t, dto.ContentHTML, "Heading")
	// Script tags never survive sanitization.
	assert.NotContains(t, dto.ContentHTML, "<script>")
}

func TestPostService_List(t *testing.T) {
	svc, _ := newPostService()

	for _, slug := range []string{"a", "b", "c"} {
		_, err := svc.Create(CreateCommand{Title: "Post " + slug, Slug: slug, Content: "x"})
		require.NoError(t, err)
	}

	posts, total, err := svc.List(1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, posts, 2)

	posts, total, err = svc.List(2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, posts, 1)
}

func TestPostService_UpdateAndDelete(t *testing.T) {
	svc, repo := newPostService()

	_, err := svc.Create(CreateCommand{Title: "Old", Slug: "my-post", Content: "old"})
	require.NoError(t, err)

	dto, err := svc.Update("my-post", UpdateCommand{Title: "New", Content: "new"})
	require.NoError(t, err)
	assert.Equal(t, "New", dto.Title)
	assert.Equal(t, "new", dto.Content)

	require.NoError(t, svc.Delete("my-post"))
	assert.Empty(t, repo.byID)

	err = svc.Delete("my-post")
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}
