package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/proxytool/proxytool/config"
	"github.com/proxytool/proxytool/internal/api/handlers"
	"github.com/proxytool/proxytool/internal/api/middleware"
	"github.com/proxytool/proxytool/internal/api/routes"
	"github.com/proxytool/proxytool/internal/cache"
	"github.com/proxytool/proxytool/internal/logger"
	"github.com/proxytool/proxytool/internal/providers/llm"
	"github.com/proxytool/proxytool/internal/providers/stt"
	pgrepo "github.com/proxytool/proxytool/internal/repositories/postgres"
	"github.com/proxytool/proxytool/internal/services"
	"github.com/proxytool/proxytool/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	l := logger.New(cfg.LogLevel)
	ctx := context.Background()

	db, err := config.OpenDatabase(cfg)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}
	l.Info("database connected")

	var resumeCache cache.Cache
	rdb, err := config.NewRedis(cfg)
	if err != nil {
		log.Fatalf("redis init error: %v", err)
	}
	if rdb != nil {
		resumeCache = cache.NewRedisCache(rdb)
		l.Info("redis connected")
	}

	var llmProvider llm.Provider
	switch cfg.LLMProvider {
	case "vertex":
		llmProvider, err = llm.NewVertexGemini(ctx, cfg.VertexProjectID, cfg.VertexLocation, cfg.VertexModel)
		if err != nil {
			log.Fatalf("vertex init error: %v", err)
		}
	default:
		llmProvider = llm.NewGroq(cfg.GroqAPIKey, cfg.GroqChatURL, 0)
	}
	defer llmProvider.Close()

	var sttProvider stt.Provider
	switch cfg.STTProvider {
	case "google":
		sttProvider, err = stt.NewGoogleSpeech(ctx, cfg.SpeechLanguage)
		if err != nil {
			log.Fatalf("speech init error: %v", err)
		}
	default:
		sttProvider = stt.NewGroqWhisper(cfg.GroqAPIKey, cfg.GroqWhisperURL, cfg.WhisperModel, 0)
	}
	defer sttProvider.Close()

	var uploader storage.Uploader
	if cfg.GCSBucket != "" {
		gcsUploader, err := storage.NewGCSUploader(ctx, cfg.GCSBucket)
		if err != nil {
			log.Fatalf("gcs init error: %v", err)
		}
		defer gcsUploader.Close()
		uploader = gcsUploader
	}

	users := pgrepo.NewUserRepo(db)
	turns := pgrepo.NewTurnRepo(db)

	userSvc := services.NewUserService(users)
	resumeSvc := services.NewResumeService(users, turns, uploader, resumeCache, l)
	chatSvc := services.NewChatService(users, turns, llmProvider, sttProvider, resumeCache, l)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(l))
	r.Use(cors.Default())

	routes.RegisterRoutes(r, routes.Deps{
		User:      handlers.NewUserHandler(userSvc),
		Resume:    handlers.NewResumeHandler(resumeSvc),
		Chat:      handlers.NewChatHandler(chatSvc),
		JWTSecret: cfg.JWTSecret,
	})

	l.WithField("port", cfg.Port).Info("starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
