package services

import (
	"strings"

	"github.com/Vamap91/carglass-assistente/internal/models"
)

// intentRule pairs a predicate with a response builder. Rules are
// evaluated in order and the first match wins, so more specific
// phrasings ("trocar loja") must come before generic ones ("loja").
type intentRule struct {
	name     string
	keywords []string
	respond  func(session *models.Session) string
}

func (r intentRule) matches(question string) bool {
	for _, keyword := range r.keywords {
		if strings.Contains(question, keyword) {
			return true
		}
	}
	return false
}

// intentRules is the ordered dispatch table for identified sessions.
func intentRules() []intentRule {
	return []intentRule{
		{
			name:     "trocar-loja",
			keywords: []string{"trocar loja", "trocar de loja", "mudar loja", "mudar de loja"},
			respond: func(_ *models.Session) string {
				return ChangeStoreMessage()
			},
		},
		{
			name:     "loja",
			keywords: []string{"loja", "local", "onde", "endereço", "endereco"},
			respond: func(_ *models.Session) string {
				return StoreLocationsMessage()
			},
		},
		{
			name:     "garantia",
			keywords: []string{"garantia", "seguro"},
			respond: func(session *models.Session) string {
				serviceType := ""
				if session.Client != nil {
					serviceType = session.Client.ServiceType
				}
				return WarrantyMessage(serviceType)
			},
		},
		{
			name:     "atendente",
			keywords: []string{"falar com pessoa", "atendente", "falar com alguém", "falar com alguem"},
			respond: func(_ *models.Session) string {
				return HumanAgentMessage()
			},
		},
		{
			name:     "status",
			keywords: []string{"status", "andamento", "progresso", "etapa", "prazo", "previsão", "previsao"},
			respond: func(session *models.Session) string {
				if session.Client == nil {
					return InvalidIdentifierMessage()
				}
				if session.Platform == models.PlatformWhatsApp {
					return ProgressTimelineText(session.Client.Status)
				}
				return ProgressBarHTML(session.Client.Status)
			},
		},
	}
}
