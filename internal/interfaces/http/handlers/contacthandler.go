package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/joshuahale/portfolio-backend/internal/application/contact"
	"github.com/joshuahale/portfolio-backend/internal/shared/logger"
	"github.com/joshuahale/portfolio-backend/internal/shared/utils"
)

type SubmitContactRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required,max=200"`
	Body    string `json:"body" binding:"required,max=500"`
}

type ContactMessageResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	SentAt  string `json:"sent_at"`
}

// ContactHandler exposes the contact form endpoint and the authenticated
// message listing for the site owner.
type ContactHandler struct {
	contact *contact.Service
	logger  logger.Interface
}

func NewContactHandler(contactService *contact.Service, log logger.Interface) *ContactHandler {
	return &ContactHandler{
		contact: contactService,
		logger:  log,
	}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var req SubmitContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	ack, err := h.contact.Submit(contact.SubmitCommand{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, ack, "Message received")
}

func (h *ContactHandler) List(c *gin.Context) {
	page, pageSize := utils.GetPaginationParams(c)

	messages, total, err := h.contact.List(page, pageSize)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]ContactMessageResponse, len(messages))
	for i, m := range messages {
		items[i] = ContactMessageResponse{
			ID:      m.ID,
			Name:    m.Name,
			Email:   m.Email,
			Subject: m.Subject,
			Body:    m.Body,
			SentAt:  m.SentAt.UTC().Format(time.RFC3339),
		}
	}

	utils.ListSuccessResponse(c, items, total, page, pageSize)
}
