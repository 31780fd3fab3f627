package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/joshuahale/portfolio-backend/internal/application/auth"
	"github.com/joshuahale/portfolio-backend/internal/interfaces/http/middleware"
	"github.com/joshuahale/portfolio-backend/internal/shared/config"
	"github.com/joshuahale/portfolio-backend/internal/shared/logger"
	"github.com/joshuahale/portfolio-backend/internal/shared/utils"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler exposes registration, login, logout, and current-user endpoints.
// The session token travels exclusively in the sid cookie; response bodies
// never contain it.
type AuthHandler struct {
	auth       *auth.Service
	sessions   *auth.SessionService
	cookie     config.CookieConfig
	sessionTTL time.Duration
	logger     logger.Interface
}

func NewAuthHandler(
	authService *auth.Service,
	sessions *auth.SessionService,
	cookie config.CookieConfig,
	sessionTTL time.Duration,
	log logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		auth:       authService,
		sessions:   sessions,
		cookie:     cookie,
		sessionTTL: sessionTTL,
		logger:     log,
	}
}

// Register creates an account and logs the new user straight in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	account, err := h.auth.Register(auth.RegisterCommand{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.issueSession(c, account.ID); err != nil {
		// The account exists; the user can still log in manually.
		h.logger.Errorw("failed to create session after registration", "user_id", account.ID, "error", err)
	}

	utils.CreatedResponse(c, account, "Registration successful")
}

// Login verifies credentials and issues a fresh session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	account, err := h.auth.Login(auth.LoginCommand{
		EmailOrUsername: req.Login,
		Password:        req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.issueSession(c, account.ID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", account)
}

// Logout revokes the current session and clears the cookie. It succeeds even
// when no valid session exists, so repeated logouts are harmless.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := utils.GetSessionToken(c)
	if token != "" {
		if _, err := h.auth.Logout(token); err != nil {
			h.logger.Errorw("failed to revoke session", "error", err)
		}
	}

	utils.ClearSessionCookie(c, h.cookie)
	utils.SuccessResponse(c, http.StatusOK, "Logged out", nil)
}

// LogoutAll revokes every session for the authenticated user.
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.auth.LogoutAll(userID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ClearSessionCookie(c, h.cookie)
	utils.SuccessResponse(c, http.StatusOK, "Logged out everywhere", nil)
}

// Me returns the account bound to the session cookie.
func (h *AuthHandler) Me(c *gin.Context) {
	account, err := h.auth.CurrentUser(utils.GetSessionToken(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", account)
}

func (h *AuthHandler) issueSession(c *gin.Context, userID uint) error {
	token, err := h.sessions.Create(userID, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		return err
	}

	utils.SetSessionCookie(c, h.cookie, token, int(h.sessionTTL.Seconds()))
	return nil
}
