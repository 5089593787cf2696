package server

import (
	"log"
	"strings"
	"time"

	"anoa.com/campuscircle/internal/config"
	"anoa.com/campuscircle/internal/handler"
	"anoa.com/campuscircle/internal/middleware"
	"anoa.com/campuscircle/internal/repository"
	"anoa.com/campuscircle/internal/service"
	"anoa.com/campuscircle/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	studentRepo := repository.NewStudentRepository(db)
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	madeByRepo := repository.NewMadeByRepository(db)

	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		// Avatar uploads degrade to URL-only updates
		log.Printf("Cloudinary storage unavailable: %v", err)
		imageStorage = nil
	}

	var meiliClient meilisearch.ServiceManager
	if cfg.MeiliSearchHost != "" {
		meiliHost := cfg.MeiliSearchHost
		if !strings.HasPrefix(meiliHost, "http") {
			meiliHost = "http://" + meiliHost + ":7700"
		}
		meiliClient = meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	}

	directorySvc := service.NewDirectoryService(meiliClient, studentRepo, userRepo)

	throttle := service.NewLoginThrottle(redisClient, cfg.LoginMaxAttempts, cfg.LoginWindow)
	authSvc := service.NewAuthService(studentRepo, userRepo, throttle)
	authHandler := handler.NewAuthHandler(authSvc)

	profileSvc := service.NewProfileService(userRepo, imageStorage)
	postSvc := service.NewPostService(postRepo)
	userHandler := handler.NewUserHandler(profileSvc, postSvc, directorySvc)
	postHandler := handler.NewPostHandler(postSvc)

	adminSvc := service.NewAdminService(studentRepo, userRepo, postRepo, directorySvc, redisClient)
	adminHandler := handler.NewAdminHandler(adminSvc)

	madeBySvc := service.NewMadeByService(madeByRepo)
	madeByHandler := handler.NewMadeByHandler(madeBySvc)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(userRepo)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
	}
	api.GET("/made-by", madeByHandler.Get)
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/auth/verify", authHandler.Verify)
		protected.GET("/auth/me", userHandler.GetMe)

		// Admin routes
		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			adminGroup.GET("/students", adminHandler.ListStudents)
			adminGroup.POST("/students", adminHandler.CreateStudent)
			adminGroup.POST("/students/bulk", adminHandler.BulkCreateStudents)
			adminGroup.PUT("/students/:id", adminHandler.UpdateStudent)
			adminGroup.DELETE("/students/:id", adminHandler.DeleteStudent)
			adminGroup.GET("/users", adminHandler.ListUsers)
			adminGroup.GET("/posts", adminHandler.ListPosts)
			adminGroup.DELETE("/posts/:id", adminHandler.DeletePost)
			adminGroup.GET("/stats", adminHandler.Stats)
		}

		// Post routes
		protected.GET("/posts", postHandler.ListPosts)
		protected.POST("/posts", postHandler.CreatePost)
		protected.GET("/posts/user/:userId", userHandler.GetUserPosts)
		protected.GET("/posts/:id", postHandler.GetPost)
		protected.PUT("/posts/:id", postHandler.UpdatePost)
		protected.DELETE("/posts/:id", postHandler.DeletePost)
		protected.POST("/posts/:id/like", postHandler.ToggleLike)
		protected.POST("/posts/:id/comment", postHandler.AddComment)
		protected.DELETE("/posts/:id/comment/:commentId", postHandler.DeleteComment)

		// User routes
		protected.GET("/users/search", userHandler.SearchStudents)
		protected.PUT("/users/profile", userHandler.UpdateProfile)
		protected.GET("/users/:id", userHandler.GetProfile)
		protected.POST("/users/:id/follow", userHandler.ToggleFollow)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
