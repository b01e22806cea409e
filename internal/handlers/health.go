package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Vamap91/carglass-assistente/internal/cache"
	"github.com/Vamap91/carglass-assistente/internal/config"
	"github.com/Vamap91/carglass-assistente/internal/services"
)

// HealthHandler reports service status, counters and config flags.
type HealthHandler struct {
	cfg      *config.Config
	sessions *services.SessionManager
	cache    *cache.Cache
}

// NewHealthHandler creates the health handler.
func NewHealthHandler(cfg *config.Config, sessions *services.SessionManager, c *cache.Cache) *HealthHandler {
	return &HealthHandler{
		cfg:      cfg,
		sessions: sessions,
		cache:    c,
	}
}

// Check returns session/cache counters and which integrations are on.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":      "healthy",
		"timestamp":   time.Now().Format("15:04"),
		"sessions":    h.sessions.Count(),
		"cache_items": h.cache.Len(),
		"config": fiber.Map{
			"use_real_api":      h.cfg.UseRealAPI,
			"openai_configured": h.cfg.OpenAIAPIKey != "",
			"twilio_configured": h.cfg.TwilioConfigured(),
		},
	})
}
