package services

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/Vamap91/carglass-assistente/internal/models"
)

var (
	scriptTagPattern = regexp.MustCompile(`(?is)<script.*?</script>`)
	jsSchemePattern  = regexp.MustCompile(`(?i)javascript:`)
)

// SanitizeInput trims the message and strips script payloads before
// anything echoes back into the chat widget.
func SanitizeInput(text string) string {
	text = strings.TrimSpace(text)
	text = scriptTagPattern.ReplaceAllString(text, "")
	text = jsSchemePattern.ReplaceAllString(text, "")
	return text
}

// Composer drives the two-state conversation: unidentified sessions
// go through the identification flow, identified ones through the
// intent rules with an optional LLM fallback.
type Composer struct {
	lookup    *ClientLookup
	responder Responder // nil when OPENAI_API_KEY is not set
	rules     []intentRule
}

// NewComposer creates a composer. responder may be nil; the canned
// fallback answers then cover unmatched questions.
func NewComposer(lookup *ClientLookup, responder Responder) *Composer {
	return &Composer{
		lookup:    lookup,
		responder: responder,
		rules:     intentRules(),
	}
}

// Respond consumes one user message against a session and returns the
// assistant's reply. The caller is responsible for appending both
// sides to the session transcript.
func (c *Composer) Respond(ctx context.Context, session *models.Session, input string) string {
	input = SanitizeInput(input)

	if !session.Identified {
		return c.identify(session, input)
	}
	return c.answer(ctx, session, input)
}

// identify runs the identification flow. On a lookup hit the session
// flips to identified permanently.
func (c *Composer) identify(session *models.Session, input string) string {
	kind, value := ClassifyIdentifier(input)
	if kind == models.IdentifierNone {
		return InvalidIdentifierMessage()
	}

	result := c.lookup.Lookup(kind, value)
	if !result.Found {
		return NotFoundMessage(kind)
	}

	session.Identify(result.Record)
	log.Printf("✅ Cliente identificado via %s: %s", kind, result.Record.OrderID)
	return c.identifiedSummary(session)
}

func (c *Composer) identifiedSummary(session *models.Session) string {
	client := session.Client

	if session.Platform == models.PlatformWhatsApp {
		return fmt.Sprintf("👋 Olá %s! Encontrei suas informações.\n\n%s\n\n"+
			"📋 Resumo:\n"+
			"• Ordem: %s\n"+
			"• Serviço: %s\n"+
			"• Veículo: %s (%s)\n"+
			"• Placa: %s\n\n"+
			"💬 Como posso ajudar?",
			client.Name,
			ProgressTimelineText(client.Status),
			client.OrderID, client.ServiceType,
			client.Vehicle.Model, client.Vehicle.Year, client.Vehicle.Plate)
	}

	stage := StageForStatus(client.Status)
	return fmt.Sprintf("👋 **Olá %s!** Encontrei suas informações.\n\n"+
		"**Status:** <span class=\"status-tag %s\">%s</span>\n\n%s\n\n"+
		"📋 **Resumo:**\n"+
		"• **Ordem:** %s\n"+
		"• **Serviço:** %s\n"+
		"• **Veículo:** %s (%s)\n"+
		"• **Placa:** %s\n\n"+
		"💬 **Como posso ajudar?**",
		client.Name, stage.Class, client.Status,
		ProgressBarHTML(client.Status),
		client.OrderID, client.ServiceType,
		client.Vehicle.Model, client.Vehicle.Year, client.Vehicle.Plate)
}

// answer dispatches an identified customer's question: intent rules
// first, then the LLM, then the deterministic canned fallback.
func (c *Composer) answer(ctx context.Context, session *models.Session, question string) string {
	lower := strings.ToLower(question)

	for _, rule := range c.rules {
		if rule.matches(lower) {
			return rule.respond(session)
		}
	}

	if c.responder != nil {
		reply, err := c.responder.Answer(ctx, question, session.Client)
		if err == nil && reply != "" {
			return reply
		}
		if err != nil {
			log.Printf("⚠️  LLM fallback failed: %v", err)
		}
	}

	name := ""
	if session.Client != nil {
		name = session.Client.Name
	}
	return GenericFallbacks(name)[0]
}
