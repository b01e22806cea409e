package handlers

import (
	_ "embed"

	"github.com/gofiber/fiber/v2"

	"github.com/Vamap91/carglass-assistente/internal/models"
	"github.com/Vamap91/carglass-assistente/internal/services"
)

//go:embed index.html
var indexHTML []byte

// SessionCookie carries the web widget's session id.
const SessionCookie = "clara_session"

// ChatHandler serves the web chat widget API.
type ChatHandler struct {
	sessions *services.SessionManager
	composer *services.Composer
}

// NewChatHandler creates the web chat handler.
func NewChatHandler(sessions *services.SessionManager, composer *services.Composer) *ChatHandler {
	return &ChatHandler{
		sessions: sessions,
		composer: composer,
	}
}

// Index serves the chat page, creating the session cookie if absent.
func (h *ChatHandler) Index(c *fiber.Ctx) error {
	h.currentSession(c)
	c.Type("html", "utf-8")
	return c.Send(indexHTML)
}

// GetMessages returns the transcript for the current session.
func (h *ChatHandler) GetMessages(c *fiber.Ctx) error {
	session := h.currentSession(c)
	return c.JSON(fiber.Map{"messages": session.Messages})
}

// SendMessage consumes one user message and returns the updated
// transcript including the assistant's reply.
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	session := h.currentSession(c)

	input := services.SanitizeInput(c.FormValue("message"))
	session.AddMessage("user", input)

	reply := h.composer.Respond(c.Context(), session, input)
	session.AddMessage("assistant", reply)

	return c.JSON(fiber.Map{"messages": session.Messages})
}

// Reset drops the current session and starts a fresh one, returning
// its welcome transcript.
func (h *ChatHandler) Reset(c *fiber.Ctx) error {
	if id := c.Cookies(SessionCookie); id != "" {
		h.sessions.RemoveSession(id)
	}

	session := h.sessions.CreateSession(models.PlatformWeb, "")
	h.setCookie(c, session.ID)

	return c.JSON(fiber.Map{"messages": session.Messages})
}

// currentSession resolves the cookie to a live session, transparently
// recreating an expired or missing one.
func (h *ChatHandler) currentSession(c *fiber.Ctx) *models.Session {
	if session, ok := h.sessions.GetSession(c.Cookies(SessionCookie)); ok {
		return session
	}

	session := h.sessions.CreateSession(models.PlatformWeb, "")
	h.setCookie(c, session.ID)
	return session
}

func (h *ChatHandler) setCookie(c *fiber.Ctx, id string) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    id,
		HTTPOnly: true,
		SameSite: "Lax",
	})
}
