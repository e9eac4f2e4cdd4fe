package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/planetaketo/forum-service/internal/config"
	"github.com/planetaketo/forum-service/internal/database"
	"github.com/planetaketo/forum-service/internal/handlers"
)

type Server struct {
	cfg     *config.Config
	db      database.Service
	handler *handlers.Handler
}

// New creates and configures the HTTP server.
func New(cfg *config.Config, db database.Service, handler *handlers.Handler) *http.Server {
	s := &Server{
		cfg:     cfg,
		db:      db,
		handler: handler,
	}

	return &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	api := r.Group("/api")
	{
		forum := api.Group("/forum")
		{
			forum.GET("", s.handler.Forum.GetPosts)
			forum.POST("", s.handler.Forum.CreatePost)
			forum.PUT("", s.handler.Forum.UpdatePost)
			forum.DELETE("", s.handler.Forum.DeletePost)
			forum.GET("/search", s.handler.Forum.Search)

			forum.GET("/posts/:postId", s.handler.Forum.GetPost)
			forum.GET("/posts/:postId/comments", s.handler.Comment.GetComments)
			forum.POST("/posts/:postId/comments", s.handler.Comment.CreateComment)

			forum.PUT("/comments/:commentId", s.handler.Comment.UpdateComment)
			forum.DELETE("/comments/:commentId", s.handler.Comment.DeleteComment)
			forum.POST("/comments/:commentId/like", s.handler.Comment.LikeComment)
			forum.DELETE("/comments/:commentId/like", s.handler.Comment.UnlikeComment)

			forum.GET("/replies", s.handler.Reply.GetReplies)
			forum.POST("/replies", s.handler.Reply.CreateReply)
			forum.PUT("/replies", s.handler.Reply.UpdateReply)
			forum.DELETE("/replies", s.handler.Reply.DeleteReply)
		}

		moderation := api.Group("/moderation")
		{
			moderation.GET("", s.handler.Moderation.GetPending)
			moderation.POST("", s.handler.Moderation.Moderate)
			moderation.GET("/all", s.handler.Moderation.GetAll)
			moderation.POST("/action", s.handler.Moderation.Action)
			moderation.POST("/purge", handlers.RequireToken(s.cfg.AnalyticsToken), s.handler.Moderation.Purge)
		}

		// Recipe and blog comments
		api.GET("/comments", s.handler.Review.GetRecipeComments)
		api.POST("/comments", s.handler.Review.CreateRecipeComment)
		api.GET("/blog-comments", s.handler.Review.GetBlogComments)
		api.POST("/blog-comments", s.handler.Review.CreateBlogComment)

		// Analytics event log
		api.POST("/analytics", s.handler.Analytics.RecordEvent)
		api.GET("/analytics", handlers.RequireToken(s.cfg.AnalyticsToken), s.handler.Analytics.GetEvents)
	}

	return r
}
