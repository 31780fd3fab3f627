package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authapp "github.com/joshuahale/portfolio-backend/internal/application/auth"
	contactapp "github.com/joshuahale/portfolio-backend/internal/application/contact"
	postapp "github.com/joshuahale/portfolio-backend/internal/application/post"
	"github.com/joshuahale/portfolio-backend/internal/infrastructure/auth"
	"github.com/joshuahale/portfolio-backend/internal/infrastructure/config"
	"github.com/joshuahale/portfolio-backend/internal/infrastructure/email"
	"github.com/joshuahale/portfolio-backend/internal/infrastructure/repository"
	"github.com/joshuahale/portfolio-backend/internal/interfaces/http/handlers"
	"github.com/joshuahale/portfolio-backend/internal/interfaces/http/middleware"
	"github.com/joshuahale/portfolio-backend/internal/shared/logger"
	"github.com/joshuahale/portfolio-backend/internal/shared/services/markdown"
)

// Router assembles repositories, services, handlers, and middleware into the
// HTTP surface of the application.
type Router struct {
	engine         *gin.Engine
	config         *config.Config
	authHandler    *handlers.AuthHandler
	postHandler    *handlers.PostHandler
	contactHandler *handlers.ContactHandler
	healthHandler  *handlers.HealthHandler
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *middleware.RateLimiter
	logger         logger.Interface
}

// NewRouter creates a new HTTP router with all dependencies wired.
// redisClient may be nil, in which case rate limiting is disabled.
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Router, error) {
	engine := gin.New()

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	postRepo := repository.NewPostRepository(db)
	contactRepo := repository.NewContactMessageRepository(db)

	sessionTTL := time.Duration(cfg.Auth.Session.TTLDays) * 24 * time.Hour
	sessionService := authapp.NewSessionService(sessionRepo, userRepo, sessionTTL, log.Named("session"))

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	authService := authapp.NewService(userRepo, sessionService, hasher, log.Named("auth"))

	renderer := markdown.NewMarkdownService()
	postService := postapp.NewService(postRepo, renderer, log.Named("post"))

	emailService := email.NewSMTPEmailService(email.SMTPConfig{
		Host:        cfg.Email.SMTPHost,
		Port:        cfg.Email.SMTPPort,
		Username:    cfg.Email.SMTPUser,
		Password:    cfg.Email.SMTPPassword,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
	})
	contactService := contactapp.NewService(contactRepo, emailService, cfg.Contact.RecipientEmail, log.Named("contact"))

	authMiddleware := middleware.NewAuthMiddleware(sessionService, log.Named("authmw"))

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled && redisClient != nil {
		window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
		rateLimiter = middleware.NewRateLimiter(redisClient, cfg.RateLimit.Limit, window)
	}

	return &Router{
		engine:         engine,
		config:         cfg,
		authHandler:    handlers.NewAuthHandler(authService, sessionService, cfg.Auth.Cookie, sessionTTL, log.Named("auth")),
		postHandler:    handlers.NewPostHandler(postService, log.Named("post")),
		contactHandler: handlers.NewContactHandler(contactService, log.Named("contact")),
		healthHandler:  handlers.NewHealthHandler(db),
		authMiddleware: authMiddleware,
		rateLimiter:    rateLimiter,
		logger:         log,
	}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestLogger(r.logger.Named("http")))
	r.engine.Use(middleware.Recovery(r.logger.Named("http")))
	r.engine.Use(middleware.CORS(r.config.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	// Every request passes through session binding; the middleware never
	// rejects, it only attaches an identity when the sid cookie is valid.
	r.engine.Use(r.authMiddleware.SessionAuth())

	r.engine.GET("/health", r.healthHandler.Check)

	api := r.engine.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.throttled(), r.authHandler.Register)
		authGroup.POST("/login", r.throttled(), r.authHandler.Login)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.POST("/logout-all", r.authMiddleware.RequireAuth(), r.authHandler.LogoutAll)
		authGroup.GET("/me", r.authHandler.Me)
	}

	posts := api.Group("/posts")
	{
		posts.GET("", r.postHandler.List)
		posts.GET("/:slug", r.postHandler.GetBySlug)
		posts.POST("", r.authMiddleware.RequireAuth(), r.postHandler.Create)
		posts.PUT("/:slug", r.authMiddleware.RequireAuth(), r.postHandler.Update)
		posts.DELETE("/:slug", r.authMiddleware.RequireAuth(), r.postHandler.Delete)
	}

	contactGroup := api.Group("/contact")
	{
		contactGroup.POST("", r.throttled(), r.contactHandler.Submit)
		contactGroup.GET("", r.authMiddleware.RequireAuth(), r.contactHandler.List)
	}
}

// throttled returns the rate limiting middleware, or a pass-through when
// rate limiting is disabled.
func (r *Router) throttled() gin.HandlerFunc {
	if r.rateLimiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return r.rateLimiter.Limit()
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
