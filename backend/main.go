package main

import (
	"log"

	"edusync/backend/config"
	"edusync/backend/events"
	"edusync/backend/middleware"
	"edusync/backend/routes"
	"edusync/backend/store"
	"edusync/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize the key-value store backend
	kv, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Error initializing store: %v", err)
	}
	store.InitializeCourses(kv)

	// Initialize logger
	logger := utils.InitLogger()

	// Optional event publisher
	var pub *events.Publisher
	if cfg.AMQPURL != "" {
		pub, err = events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, logger)
		if err != nil {
			log.Fatalf("Error connecting to AMQP: %v", err)
		}
		defer pub.Close()
	}

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, kv, cfg, pub)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}

func openStore(cfg *config.Config) (store.KV, error) {
	switch cfg.StoreBackend {
	case "postgres":
		return store.OpenGormKV(cfg.PostgresDSN())
	case "redis":
		return store.OpenRedisKV(cfg.RedisAddr)
	case "memory":
		return store.NewMemoryKV(), nil
	default:
		return store.OpenSQLiteKV(cfg.StorePath)
	}
}
