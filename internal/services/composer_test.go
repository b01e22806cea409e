package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vamap91/carglass-assistente/internal/models"
)

type failingResponder struct{}

func (failingResponder) Answer(context.Context, string, *models.ClientRecord) (string, error) {
	return "", errors.New("api key revoked")
}

type fixedResponder struct {
	reply string
}

func (f fixedResponder) Answer(context.Context, string, *models.ClientRecord) (string, error) {
	return f.reply, nil
}

func newTestComposer(responder Responder) (*Composer, *SessionManager) {
	return NewComposer(newMockLookup(), responder), NewSessionManager(time.Minute)
}

func TestIdentificationFlow(t *testing.T) {
	composer, sessions := newTestComposer(nil)
	session := sessions.CreateSession(models.PlatformWeb, "")

	reply := composer.Respond(context.Background(), session, "12345678900")

	assert.True(t, session.Identified)
	require.NotNil(t, session.Client)
	assert.Contains(t, reply, "Carlos Silva")
	assert.Contains(t, reply, "ORD12345")
	assert.Contains(t, reply, "status-progress-container")
}

func TestIdentificationUnclassifiableInput(t *testing.T) {
	composer, sessions := newTestComposer(nil)
	session := sessions.CreateSession(models.PlatformWeb, "")

	reply := composer.Respond(context.Background(), session, "9999999999999")

	assert.False(t, session.Identified)
	assert.Contains(t, reply, "identificador válido")
}

func TestIdentificationLookupMiss(t *testing.T) {
	composer, sessions := newTestComposer(nil)
	session := sessions.CreateSession(models.PlatformWeb, "")

	// Valid checksum, but nobody in the dataset.
	reply := composer.Respond(context.Background(), session, "52998224725")

	assert.False(t, session.Identified)
	assert.Contains(t, reply, "Não encontrei informações")
	assert.Contains(t, reply, "cpf")
}

func TestWarrantyAnswerWithoutLLM(t *testing.T) {
	composer, sessions := newTestComposer(nil)
	session := sessions.CreateSession(models.PlatformWeb, "")
	composer.Respond(context.Background(), session, "12345678900")
	require.True(t, session.Identified)

	reply := composer.Respond(context.Background(), session, "como funciona a garantia?")

	assert.Contains(t, reply, "12 meses")
	assert.Contains(t, reply, "Troca de Parabrisa")
}

func TestWarrantyAnswerIndependentOfLLMFailure(t *testing.T) {
	composer, sessions := newTestComposer(failingResponder{})
	session := sessions.CreateSession(models.PlatformWeb, "")
	composer.Respond(context.Background(), session, "12345678900")

	reply := composer.Respond(context.Background(), session, "e a garantia?")
	assert.Contains(t, reply, "12 meses")
}

func TestIntentOrderingChangeStoreBeforeStore(t *testing.T) {
	composer, sessions := newTestComposer(nil)
	session := sessions.CreateSession(models.PlatformWeb, "")
	composer.Respond(context.Background(), session, "12345678900")

	specific := composer.Respond(context.Background(), session, "quero trocar de loja")
	assert.Contains(t, specific, "trocar a loja")

	generic := composer.Respond(context.Background(), session, "onde fica a loja?")
	assert.Contains(t, generic, "CarGlass Morumbi")
}

func TestHumanAgentIntent(t *testing.T) {
	composer, sessions := newTestComposer(nil)
	session := sessions.CreateSession(models.PlatformWeb, "")
	composer.Respond(context.Background(), session, "12345678900")

	reply := composer.Respond(context.Background(), session, "quero falar com atendente")
	assert.Contains(t, reply, "0800-727-2327")
	assert.Contains(t, reply, "equipe")
}

func TestStatusIntentPerPlatform(t *testing.T) {
	composer, sessions := newTestComposer(nil)

	web := sessions.CreateSession(models.PlatformWeb, "")
	composer.Respond(context.Background(), web, "12345678900")
	webReply := composer.Respond(context.Background(), web, "qual o andamento?")
	assert.Contains(t, webReply, "timeline-track")

	wa := sessions.CreateSession(models.PlatformWhatsApp, "+5511987654321")
	composer.Respond(context.Background(), wa, "12345678900")
	waReply := composer.Respond(context.Background(), wa, "qual o andamento?")
	assert.NotContains(t, waReply, "<div")
	assert.Contains(t, waReply, "Em andamento")
}

func TestLLMAnswerUsedWhenAvailable(t *testing.T) {
	composer, sessions := newTestComposer(fixedResponder{reply: "Resposta do modelo."})
	session := sessions.CreateSession(models.PlatformWeb, "")
	composer.Respond(context.Background(), session, "12345678900")

	reply := composer.Respond(context.Background(), session, "posso levar meu cachorro?")
	assert.Equal(t, "Resposta do modelo.", reply)
}

func TestFallbackIsDeterministicFirstCanned(t *testing.T) {
	composer, sessions := newTestComposer(failingResponder{})
	session := sessions.CreateSession(models.PlatformWeb, "")
	composer.Respond(context.Background(), session, "12345678900")

	first := composer.Respond(context.Background(), session, "posso levar meu cachorro?")
	second := composer.Respond(context.Background(), session, "posso levar meu cachorro?")

	assert.Equal(t, first, second)
	assert.Equal(t, GenericFallbacks("Carlos Silva")[0], first)
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "oi", SanitizeInput("  oi  "))
	assert.Equal(t, "antes  depois", SanitizeInput("antes <script>alert(1)</script> depois"))
	assert.Equal(t, "alert(1)", SanitizeInput("javascript:alert(1)"))
}

func TestWhatsAppIdentificationSummaryIsPlainText(t *testing.T) {
	composer, sessions := newTestComposer(nil)
	session := sessions.CreateSession(models.PlatformWhatsApp, "+5511987654321")

	reply := composer.Respond(context.Background(), session, "12345678900")

	assert.True(t, session.Identified)
	assert.Contains(t, reply, "Carlos Silva")
	assert.NotContains(t, reply, "<div")
	assert.Contains(t, reply, "🔵")
}
