package main

import (
	"fmt"
	"os"
	"time"

	"github.com/loqostudio/loqo-backend/internal/db"
	"github.com/loqostudio/loqo-backend/internal/handlers"
	"github.com/loqostudio/loqo-backend/internal/logger"
	"github.com/loqostudio/loqo-backend/internal/middleware"
	"github.com/loqostudio/loqo-backend/internal/repos"
	"github.com/loqostudio/loqo-backend/internal/server"
	"github.com/loqostudio/loqo-backend/internal/services"
	"github.com/loqostudio/loqo-backend/internal/sse"
	"github.com/loqostudio/loqo-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	utils.LoadDotEnv(log)
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	allowOrigins := utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000", log)

	// Database
	dbService, err := db.NewDatabaseService(log)
	if err != nil {
		log.Error("Database init failed", "error", err)
		os.Exit(1)
	}
	if err = dbService.AutoMigrateAll(); err != nil {
		log.Warn("Auto migration failed", "error", err)
	}
	theDB := dbService.DB()

	// Repos
	log.Info("Setting up repos from main...")
	userRepo := repos.NewUserRepo(theDB, log)
	userTokenRepo := repos.NewUserTokenRepo(theDB, log)
	orgRepo := repos.NewOrganizationRepo(theDB, log)
	projectRepo := repos.NewProjectRepo(theDB, log)
	episodeRepo := repos.NewEpisodeRepo(theDB, log)
	partRepo := repos.NewPartRepo(theDB, log)
	contentRepo := repos.NewContentVersionRepo(theDB, log)
	imageRepo := repos.NewImageRepo(theDB, log)
	clipRepo := repos.NewClipRepo(theDB, log)
	assetRepo := repos.NewAssetRepo(theDB, log)

	// SSE
	log.Info("Setting up SSE hub now...")
	sseHub := sse.NewSSEHub(log)
	notifier := services.NewStudioNotifier(sseHub)

	// Optional studio cache
	var studioCache services.StudioCache
	if redisAddr := utils.GetEnv("REDIS_ADDR", "", log); redisAddr != "" {
		cacheTTL := utils.GetEnvAsInt("STUDIO_CACHE_TTL", 30, log)
		studioCache, err = services.NewRedisStudioCache(log, redisAddr, time.Duration(cacheTTL)*time.Second)
		if err != nil {
			log.Warn("Redis studio cache unavailable, continuing without it", "error", err)
			studioCache = nil
		}
	}

	// Services
	log.Info("Setting up services from main...")
	authService := services.NewAuthService(theDB, log, userRepo, userTokenRepo, orgRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	userService := services.NewUserService(theDB, log, userRepo)
	projectService := services.NewProjectService(theDB, log, projectRepo, episodeRepo, partRepo)
	episodeService := services.NewEpisodeService(theDB, log, projectService, episodeRepo, partRepo)
	partService := services.NewPartService(theDB, log, episodeService, partRepo)
	contentService := services.NewContentService(theDB, log, partService, contentRepo, notifier, studioCache)
	mediaService := services.NewMediaService(theDB, log, projectService, partService, imageRepo, clipRepo, notifier, studioCache)
	assetService := services.NewAssetService(theDB, log, projectService, assetRepo)
	studioService := services.NewStudioService(theDB, log, projectService, episodeService, partService, episodeRepo, partRepo, contentRepo, imageRepo, clipRepo, assetRepo, studioCache)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService, studioService)
	episodeHandler := handlers.NewEpisodeHandler(episodeService, studioService)
	partHandler := handlers.NewPartHandler(partService, studioService)
	contentHandler := handlers.NewContentHandler(contentService)
	mediaHandler := handlers.NewMediaHandler(mediaService)
	assetHandler := handlers.NewAssetHandler(assetService)
	sseHandler := handlers.NewSSEHandler(log, sseHub)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AllowOrigins:   server.SplitOrigins(allowOrigins),
		AuthHandler:    authHandler,
		AuthMiddleware: authMiddleware,
		UserHandler:    userHandler,
		ProjectHandler: projectHandler,
		EpisodeHandler: episodeHandler,
		PartHandler:    partHandler,
		ContentHandler: contentHandler,
		MediaHandler:   mediaHandler,
		AssetHandler:   assetHandler,
		SSEHandler:     sseHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
