package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/loqostudio/loqo-backend/internal/handlers"
	"github.com/loqostudio/loqo-backend/internal/middleware"
)

type RouterConfig struct {
	AllowOrigins   []string
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	UserHandler    *handlers.UserHandler
	ProjectHandler *handlers.ProjectHandler
	EpisodeHandler *handlers.EpisodeHandler
	PartHandler    *handlers.PartHandler
	ContentHandler *handlers.ContentHandler
	MediaHandler   *handlers.MediaHandler
	AssetHandler   *handlers.AssetHandler
	SSEHandler     *handlers.SSEHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/auth/register", cfg.AuthHandler.Register)
	router.POST("/auth/login", cfg.AuthHandler.Login)

	// Protected
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	// Auth
	protected.POST("/auth/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/auth/logout", cfg.AuthHandler.Logout)

	// User
	protected.GET("/user", cfg.UserHandler.GetMe)
	protected.PUT("/user", cfg.UserHandler.UpdateMe)

	// Projects
	protected.POST("/projects", cfg.ProjectHandler.Create)
	protected.GET("/projects", cfg.ProjectHandler.List)
	protected.GET("/projects/:id", cfg.ProjectHandler.Get)
	protected.PUT("/projects/:id", cfg.ProjectHandler.Update)
	protected.DELETE("/projects/:id", cfg.ProjectHandler.Delete)
	protected.GET("/projects/:id/overview", cfg.ProjectHandler.Overview)

	// Episodes under project
	protected.POST("/projects/:id/episodes", cfg.EpisodeHandler.Create)
	protected.GET("/projects/:id/episodes", cfg.EpisodeHandler.ListByProject)
	protected.GET("/episodes/:episodeId", cfg.EpisodeHandler.Get)
	protected.PUT("/episodes/:episodeId", cfg.EpisodeHandler.Update)
	protected.DELETE("/episodes/:episodeId", cfg.EpisodeHandler.Delete)
	protected.GET("/episodes/:episodeId/full", cfg.EpisodeHandler.Full)

	// Parts under episode
	protected.POST("/episodes/:episodeId/parts", cfg.PartHandler.Create)
	protected.GET("/episodes/:episodeId/parts", cfg.PartHandler.ListByEpisode)
	protected.GET("/parts/:partId", cfg.PartHandler.Get)
	protected.PUT("/parts/:partId", cfg.PartHandler.Update)
	protected.DELETE("/parts/:partId", cfg.PartHandler.Delete)
	protected.GET("/parts/:partId/studio", cfg.PartHandler.Studio)

	// Versioned content
	protected.POST("/content", cfg.ContentHandler.Create)
	protected.PUT("/content/:id", cfg.ContentHandler.Update)
	protected.DELETE("/content/:id", cfg.ContentHandler.Delete)
	protected.POST("/content/:id/select", cfg.ContentHandler.Select)
	protected.GET("/content/by-part/:partId", cfg.ContentHandler.ListByPart)

	// Media
	protected.POST("/media", cfg.MediaHandler.Create)
	protected.GET("/media/by-part/:partId", cfg.MediaHandler.ListByPart)
	protected.DELETE("/media/:id", cfg.MediaHandler.DeleteMedia)
	protected.DELETE("/images/:id", cfg.MediaHandler.DeleteImage)
	protected.DELETE("/clips/:id", cfg.MediaHandler.DeleteClip)

	// Assets
	protected.POST("/assets", cfg.AssetHandler.Create)
	protected.GET("/assets/by-project/:projectId", cfg.AssetHandler.ListByProject)
	protected.GET("/assets/:id", cfg.AssetHandler.Get)
	protected.PUT("/assets/:id", cfg.AssetHandler.Update)
	protected.DELETE("/assets/:id", cfg.AssetHandler.Delete)

	// SSE
	protected.GET("/sse/stream", cfg.SSEHandler.SSEStream)
	protected.POST("/sse/subscribe", cfg.SSEHandler.SSESubscribe)
	protected.POST("/sse/unsubscribe", cfg.SSEHandler.SSEUnsubscribe)

	return router
}

// SplitOrigins parses a comma-separated origin list from the environment.
func SplitOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
