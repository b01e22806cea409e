package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/Vamap91/carglass-assistente/internal/cache"
	"github.com/Vamap91/carglass-assistente/internal/config"
	"github.com/Vamap91/carglass-assistente/internal/handlers"
	"github.com/Vamap91/carglass-assistente/internal/jobs"
	"github.com/Vamap91/carglass-assistente/internal/routes"
	"github.com/Vamap91/carglass-assistente/internal/services"
	"github.com/Vamap91/carglass-assistente/internal/storage"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found - using environment variables")
	}

	cfg := config.Load()

	// Shared state
	lookupCache := cache.New()
	sessionManager := services.NewSessionManager(cfg.SessionTimeout)

	// Client-data lookup chain: real API (when enabled) with the mock
	// dataset as silent fallback.
	var apiStore storage.Store
	if cfg.UseRealAPI {
		apiStore = storage.NewAPIStore(cfg.CarGlassAPIURL, cfg.APITimeout)
	}
	clientLookup := services.NewClientLookup(lookupCache, apiStore, storage.NewMemoryStore(), cfg.CacheTTL)

	// LLM fallback for questions no intent rule covers
	var responder services.Responder
	if cfg.OpenAIAPIKey != "" {
		responder = services.NewOpenAIResponder(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}

	composer := services.NewComposer(clientLookup, responder)

	// Outbound WhatsApp
	var sender services.WhatsAppSender
	twilioService, err := services.NewTwilioService(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppFrom)
	if err != nil {
		log.Printf("⚠️  Twilio not configured - WhatsApp replies will not be sent: %v", err)
	} else {
		sender = twilioService
		log.Println("✅ Twilio service initialized")
	}
	whatsappService := services.NewWhatsAppService(sessionManager, composer, sender)

	// Handlers
	chatHandler := handlers.NewChatHandler(sessionManager, composer)
	whatsappHandler := handlers.NewWhatsAppHandler(whatsappService, sessionManager, cfg.TwilioConfigured())
	healthHandler := handlers.NewHealthHandler(cfg, sessionManager, lookupCache)

	// Background cleanup of idle sessions and expired cache entries
	cleanupJob := jobs.NewCleanupJob(sessionManager, lookupCache, 5*time.Minute)
	cleanupJob.Start()

	// Create fiber app. Nothing past this boundary surfaces as a
	// structured error to the customer: the handler answers with a
	// generic apology instead.
	app := fiber.New(fiber.Config{
		AppName: "CarGlass Assistente v2.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			log.Printf("❌ Request failed: %v", err)
			return c.Status(code).JSON(fiber.Map{
				"error": services.ApologyMessage(),
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	routes.SetupRoutes(app, chatHandler, whatsappHandler, healthHandler, cfg.TwilioAuthToken)

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		cleanupJob.Stop()
		_ = app.Shutdown()
	}()

	log.Println("========================================")
	log.Printf("🚀 CarGlass Assistente starting on port %s", cfg.Port)
	log.Printf("📡 Status API: %s", apiMode(cfg.UseRealAPI))
	log.Printf("🤖 OpenAI: %s", openAIMode(cfg.OpenAIAPIKey))
	log.Printf("📱 WhatsApp: %s", whatsappMode(cfg.TwilioConfigured()))
	log.Println("========================================")

	log.Fatal(app.Listen(":" + cfg.Port))
}

func apiMode(useRealAPI bool) string {
	if useRealAPI {
		return "REAL (mock fallback)"
	}
	return "SIMULAÇÃO"
}

func openAIMode(apiKey string) string {
	if apiKey != "" {
		return "CONFIGURADO"
	}
	return "FALLBACK"
}

func whatsappMode(configured bool) string {
	if configured {
		return "Configurado"
	}
	return "Não configurado"
}
