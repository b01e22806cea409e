package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/Vamap91/carglass-assistente/internal/models"
	"github.com/Vamap91/carglass-assistente/internal/services"
)

// emptyTwiML acknowledges a webhook without queueing a synchronous
// reply; the actual answer goes out through the REST API.
const emptyTwiML = `<?xml version="1.0" encoding="UTF-8"?><Response></Response>`

// TwilioWebhookPayload is the form-encoded body Twilio posts for an
// inbound WhatsApp message.
type TwilioWebhookPayload struct {
	MessageSid string `form:"MessageSid"`
	AccountSid string `form:"AccountSid"`
	From       string `form:"From"` // "whatsapp:+5511987654321"
	To         string `form:"To"`
	Body       string `form:"Body"`
	NumMedia   string `form:"NumMedia"`
}

// WhatsAppHandler handles the Twilio WhatsApp webhook.
type WhatsAppHandler struct {
	whatsapp   *services.WhatsAppService
	sessions   *services.SessionManager
	configured bool
}

// NewWhatsAppHandler creates the webhook handler. configured reports
// whether outbound Twilio sends are possible, for the status route.
func NewWhatsAppHandler(whatsapp *services.WhatsAppService, sessions *services.SessionManager, configured bool) *WhatsAppHandler {
	return &WhatsAppHandler{
		whatsapp:   whatsapp,
		sessions:   sessions,
		configured: configured,
	}
}

// Webhook processes an inbound WhatsApp message and acknowledges with
// empty TwiML; the reply is sent out-of-band.
func (h *WhatsAppHandler) Webhook(c *fiber.Ctx) error {
	var payload TwilioWebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing webhook: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook payload",
		})
	}

	// Delivery status callbacks arrive on the same URL with no body;
	// only actual messages get processed.
	if payload.From != "" && payload.Body != "" {
		log.Printf("📱 WhatsApp message from %s (sid %s)", payload.From, payload.MessageSid)
		h.whatsapp.ProcessMessage(c.Context(), payload.From, payload.Body)
	}

	c.Set(fiber.HeaderContentType, "application/xml")
	return c.SendString(emptyTwiML)
}

// Status reports whether Twilio is configured and how many WhatsApp
// sessions are live.
func (h *WhatsAppHandler) Status(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"configured":      h.configured,
		"active_sessions": h.sessions.CountByPlatform(models.PlatformWhatsApp),
	})
}
