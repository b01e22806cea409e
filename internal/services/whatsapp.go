package services

import (
	"context"
	"log"
	"strings"
)

// WhatsAppSender is the outbound side of the WhatsApp integration.
// Satisfied by TwilioService; nil-able for dry runs and tests.
type WhatsAppSender interface {
	SendWhatsAppMessage(to string, message string) error
}

// WhatsAppService glues the Twilio webhook to the composer: it binds
// an inbound phone number to a session, produces the reply and sends
// it back out-of-band.
type WhatsAppService struct {
	sessions *SessionManager
	composer *Composer
	sender   WhatsAppSender // nil when Twilio is not configured
}

// NewWhatsAppService creates the WhatsApp message processor.
func NewWhatsAppService(sessions *SessionManager, composer *Composer, sender WhatsAppSender) *WhatsAppService {
	return &WhatsAppService{
		sessions: sessions,
		composer: composer,
		sender:   sender,
	}
}

// ProcessMessage handles one inbound WhatsApp message and returns the
// reply text. The reply is also pushed through the sender when one is
// configured.
func (w *WhatsAppService) ProcessMessage(ctx context.Context, from, body string) string {
	phone := strings.TrimPrefix(from, "whatsapp:")
	body = SanitizeInput(body)

	session := w.sessions.GetOrCreateWhatsAppSession(phone)
	session.AddMessage("user", body)

	reply := w.composer.Respond(ctx, session, body)
	session.AddMessage("assistant", reply)

	if w.sender != nil {
		if err := w.sender.SendWhatsAppMessage(phone, reply); err != nil {
			log.Printf("❌ Failed to deliver reply to %s: %v", phone, err)
		}
	} else {
		log.Printf("📤 Reply (Twilio not configured, not sent): %s", reply)
	}

	return reply
}
