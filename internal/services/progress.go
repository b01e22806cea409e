package services

import (
	"fmt"
	"strings"
	"time"
)

// stageInfo positions a service-order status on the fixed timeline.
type stageInfo struct {
	ActiveStep int
	Percentage string
	Class      string // CSS class on the web widget
}

var timelineSteps = []string{
	"Ordem Aberta",
	"Aguardando Fotos",
	"Peça Identificada",
	"Agendado",
	"Execução",
	"Inspeção",
	"Concluído",
}

// statusStages maps every known status string to its timeline
// position. Unknown statuses silently map to step 0 / "desconhecido";
// the widget treats that as "order just opened", which is the contract
// the frontend relies on.
var statusStages = map[string]stageInfo{
	"Ordem de Serviço Aberta":                  {0, "0%", "aberta"},
	"Aguardando fotos para liberação da ordem": {1, "14%", "aguardando"},
	"Fotos Recebidas":                          {1, "28%", "recebidas"},
	"Peça Identificada":                        {2, "42%", "identificada"},
	"Ordem de Serviço Liberada":                {3, "57%", "liberada"},
	"Serviço agendado com sucesso":             {3, "57%", "agendado"},
	"Em andamento":                             {4, "71%", "andamento"},
	"Concluído":                                {6, "100%", "concluido"},
}

// StageForStatus returns the timeline position of a status string.
func StageForStatus(status string) stageInfo {
	if stage, ok := statusStages[status]; ok {
		return stage
	}
	return stageInfo{0, "0%", "desconhecido"}
}

// ProgressBarHTML renders the web widget's progress timeline for a
// status. The markup and CSS classes match the chat page stylesheet.
func ProgressBarHTML(status string) string {
	stage := StageForStatus(status)
	now := time.Now().Format("02/01/2006 - 15:04")

	var steps strings.Builder
	for i, label := range timelineSteps {
		state := "pending"
		highlight := ""
		switch {
		case i < stage.ActiveStep:
			state = "completed"
		case i == stage.ActiveStep:
			state = "active"
		case i == stage.ActiveStep+1 && stage.ActiveStep < len(timelineSteps)-1:
			state = "next"
			highlight = `<div class="step-highlight">Próxima etapa</div>`
		}
		steps.WriteString(fmt.Sprintf(
			`<div class="timeline-step %s"><div class="step-node"></div><div class="step-label">%s</div>%s</div>`,
			state, label, highlight))
	}

	return fmt.Sprintf(
		`<div class="status-progress-container">`+
			`<div class="status-current"><span class="status-tag %s">%s</span><span class="status-date">%s</span></div>`+
			`<div class="progress-timeline"><div class="timeline-track" style="--progress-width: %s;">%s</div></div>`+
			`</div>`,
		stage.Class, status, now, stage.Percentage, steps.String())
}

// ProgressTimelineText renders the WhatsApp plain-text version of the
// same timeline.
func ProgressTimelineText(status string) string {
	stage := StageForStatus(status)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 Status: %s (%s)\n\n", status, stage.Percentage))
	for i, label := range timelineSteps {
		switch {
		case i < stage.ActiveStep:
			b.WriteString("✅ ")
		case i == stage.ActiveStep:
			b.WriteString("🔵 ")
		default:
			b.WriteString("⚪ ")
		}
		b.WriteString(label)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
