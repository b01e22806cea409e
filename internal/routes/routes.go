package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/Vamap91/carglass-assistente/internal/handlers"
	"github.com/Vamap91/carglass-assistente/internal/middleware"
)

// SetupRoutes configures all API routes.
func SetupRoutes(
	app *fiber.App,
	chat *handlers.ChatHandler,
	whatsapp *handlers.WhatsAppHandler,
	health *handlers.HealthHandler,
	twilioAuthToken string,
) {
	// Web chat widget
	app.Get("/", chat.Index)
	app.Get("/get_messages", chat.GetMessages)
	app.Post("/send_message", limiter.New(limiter.Config{
		Max:        30,
		Expiration: time.Minute,
	}), chat.SendMessage)
	app.Post("/reset", chat.Reset)

	// Monitoring
	app.Get("/health", health.Check)

	// WhatsApp via Twilio
	wa := app.Group("/whatsapp")
	wa.Post("/webhook", middleware.ValidateTwilioSignature(twilioAuthToken), whatsapp.Webhook)
	wa.Get("/status", whatsapp.Status)
}
