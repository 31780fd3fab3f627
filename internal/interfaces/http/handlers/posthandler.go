package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joshuahale/portfolio-backend/internal/application/post"
	"github.com/joshuahale/portfolio-backend/internal/shared/logger"
	"github.com/joshuahale/portfolio-backend/internal/shared/utils"
)

type CreatePostRequest struct {
	Title     string `json:"title" binding:"required,max=200"`
	Slug      string `json:"slug" binding:"required,max=200"`
	Content   string `json:"content" binding:"required"`
	HeroImage string `json:"hero_image"`
}

type UpdatePostRequest struct {
	Title     string `json:"title" binding:"required,max=200"`
	Content   string `json:"content" binding:"required"`
	HeroImage string `json:"hero_image"`
}

// PostHandler exposes the blog post endpoints. Reads are public; mutations
// require an authenticated session.
type PostHandler struct {
	posts  *post.Service
	logger logger.Interface
}

func NewPostHandler(posts *post.Service, log logger.Interface) *PostHandler {
	return &PostHandler{
		posts:  posts,
		logger: log,
	}
}

func (h *PostHandler) Create(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	dto, err := h.posts.Create(post.CreateCommand{
		Title:     req.Title,
		Slug:      req.Slug,
		Content:   req.Content,
		HeroImage: req.HeroImage,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto, "Post created")
}

func (h *PostHandler) List(c *gin.Context) {
	page, pageSize := utils.GetPaginationParams(c)

	posts, total, err := h.posts.List(page, pageSize)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, posts, total, page, pageSize)
}

func (h *PostHandler) GetBySlug(c *gin.Context) {
	dto, err := h.posts.GetBySlug(c.Param("slug"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto)
}

func (h *PostHandler) Update(c *gin.Context) {
	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	dto, err := h.posts.Update(c.Param("slug"), post.UpdateCommand{
		Title:     req.Title,
		Content:   req.Content,
		HeroImage: req.HeroImage,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Post updated", dto)
}

func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.posts.Delete(c.Param("slug")); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
