package services

import (
	"fmt"

	"github.com/Vamap91/carglass-assistente/internal/models"
)

// Canned message texts for both platforms. The web widget renders
// markdown-ish HTML; WhatsApp gets plain text with emoji.

const centralPhone = "0800-727-2327"

// WelcomeMessage is the assistant message every new session starts with.
func WelcomeMessage(platform models.Platform) string {
	if platform == models.PlatformWhatsApp {
		return "Olá! 👋 Sou Clara, assistente virtual da CarGlass.\n" +
			"Me envie seu CPF, telefone, placa do veículo ou número da ordem de serviço para começarmos."
	}
	return "Olá! Sou Clara, sua assistente virtual da CarGlass. Digite seu CPF, telefone ou placa do veículo para começarmos."
}

// InvalidIdentifierMessage asks the customer to retry with a valid
// identifier.
func InvalidIdentifierMessage() string {
	return "Por favor, forneça um identificador válido:\n\n" +
		"📋 **CPF** (11 dígitos)\n" +
		"📱 **Telefone** (10 ou 11 dígitos)\n" +
		"🚗 **Placa do veículo**\n" +
		"🔢 **Número da ordem de serviço**"
}

// NotFoundMessage tells the customer no record matched the
// identifier kind they used.
func NotFoundMessage(kind models.IdentifierKind) string {
	return fmt.Sprintf("❌ **Não encontrei informações** com o %s fornecido.\n\n"+
		"**Você pode tentar:**\n"+
		"• Verificar se digitou corretamente\n"+
		"• Usar outro identificador\n"+
		"• Entrar em contato: **📞 %s**", kind, centralPhone)
}

// StoreLocationsMessage lists the nearest CarGlass units.
func StoreLocationsMessage() string {
	return "🏪 **Lojas CarGlass próximas:**\n\n" +
		"• **CarGlass Morumbi**: Av. Professor Francisco Morato, 2307 - Butantã\n" +
		"• **CarGlass Vila Mariana**: Rua Domingos de Morais, 1267 - Vila Mariana\n" +
		"• **CarGlass Santo André**: Av. Industrial, 600 - Santo André\n\n" +
		"📞 Para mudar local: **" + centralPhone + "**"
}

// ChangeStoreMessage covers requests to move the service to another
// unit. Checked before the generic store-location intent.
func ChangeStoreMessage() string {
	return "🔄 **Para trocar a loja do seu atendimento**, fale com nossa central:\n\n" +
		"📞 **" + centralPhone + "**\n\n" +
		"Tenha em mãos o número da sua ordem de serviço."
}

// WarrantyMessage describes the service warranty.
func WarrantyMessage(serviceType string) string {
	if serviceType == "" {
		serviceType = "seu serviço"
	}
	return fmt.Sprintf("🛡️ **Garantia CarGlass** para %s:\n\n"+
		"✅ **12 meses** a partir da conclusão\n"+
		"✅ Cobre defeitos de instalação\n"+
		"✅ Válida em qualquer unidade CarGlass\n\n"+
		"📞 Central: **%s**", serviceType, centralPhone)
}

// HumanAgentMessage routes the customer to a human.
func HumanAgentMessage() string {
	return "👥 **Falar com nossa equipe:**\n\n" +
		"📞 **Central:** " + centralPhone + "\n" +
		"📱 **WhatsApp:** (11) 4003-8070\n\n" +
		"⏰ **Horário:**\n" +
		"• Segunda a Sexta: 8h às 20h\n" +
		"• Sábado: 8h às 16h"
}

// GenericFallbacks are the canned answers used when the LLM is
// unavailable. Selection is deterministic: the first entry, with the
// customer's name filled in.
func GenericFallbacks(name string) []string {
	if name == "" {
		name = "Cliente"
	}
	return []string{
		fmt.Sprintf("Entendi sua pergunta, %s. Para informações específicas, entre em contato: 📞 **%s**", name, centralPhone),
		fmt.Sprintf("%s, nossa central pode te ajudar melhor com isso: 📞 **%s**", name, centralPhone),
		fmt.Sprintf("Boa pergunta, %s! Recomendo falar com nossa equipe: 📞 **%s**", name, centralPhone),
	}
}

// ApologyMessage is the blanket answer for unexpected failures.
func ApologyMessage() string {
	return "Desculpe, ocorreu um erro. Nossa equipe foi notificada. Tente novamente em instantes."
}
