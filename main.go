package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/mizukif/photo-diary/ai"
	"github.com/mizukif/photo-diary/auth"
	"github.com/mizukif/photo-diary/config"
	"github.com/mizukif/photo-diary/database"
	"github.com/mizukif/photo-diary/diary"
	handler "github.com/mizukif/photo-diary/handlers"
	"github.com/mizukif/photo-diary/models"
	"github.com/mizukif/photo-diary/router"
	"github.com/mizukif/photo-diary/storage"
	"github.com/mizukif/photo-diary/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	ctx := context.Background()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("closing database: %v", err)
		}
	}()

	if err := database.Migrate(db, &models.Diary{}); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	uploader, err := storage.NewUploader(ctx, cfg.BucketName)
	if err != nil {
		log.Fatalf("storage init failed: %v", err)
	}

	analyzer, err := ai.NewClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		log.Fatalf("AI client init failed: %v", err)
	}

	authService, err := auth.NewService(cfg)
	if err != nil {
		log.Fatalf("auth init failed: %v", err)
	}

	service := diary.NewService(analyzer, uploader, store.NewDiaryStore(db))
	h := handler.New(service, authService)

	app := fiber.New(fiber.Config{
		AppName:               "photo-diary",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))

	router.SetupRoutes(app, h)

	log.Printf("photo-diary listening on :%s (env: %s)", cfg.Port, cfg.AppEnv)
	log.Fatal(app.Listen(":" + cfg.Port))
}
