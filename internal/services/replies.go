package services

import "fmt"

// replyKey identifies a customer-facing reply by (state, outcome).
// Replies are Spanish product copy - data, not control flow.
type replyKey string

const (
	replyGreetingWelcome      replyKey = "greeting.welcome"
	replyTypeChosenDelivery   replyKey = "selecting_type.delivery"
	replyTypeChosenPickup     replyKey = "selecting_type.pickup"
	replyTypeReprompt         replyKey = "selecting_type.reprompt"
	replyAddressAckDelivery   replyKey = "awaiting_address.delivery"
	replyAddressAckPickup     replyKey = "awaiting_address.pickup"
	replyItemsReminder        replyKey = "selecting_items.reminder"
	replyConfirmDone          replyKey = "confirming_order.confirmed"
	replyConfirmReprompt      replyKey = "confirming_order.reprompt"
	replyOrderConfirmedThanks replyKey = "order_confirmed.thanks"
	replyFallback             replyKey = "fallback"
)

var replyText = map[replyKey]string{
	replyGreetingWelcome:      "¡Hola! Bienvenido a Fonda. ¿Desea su pedido por delivery o pickup?",
	replyTypeChosenDelivery:   "¡Perfecto, pedido por delivery! Por favor escríbanos su dirección de entrega. Mientras tanto puede ir viendo el menú aquí: %s",
	replyTypeChosenPickup:     "¡Perfecto, pedido por pickup! Por favor indíquenos en cuál de nuestros locales desea retirar. Mientras tanto puede ir viendo el menú aquí: %s",
	replyTypeReprompt:         "Por favor escriba 'delivery' o 'pickup' para continuar con su pedido.",
	replyAddressAckDelivery:   "¡Gracias! Registramos su dirección. Elija sus platos en el menú: %s",
	replyAddressAckPickup:     "¡Gracias! Registramos el local de retiro. Elija sus platos en el menú: %s",
	replyItemsReminder:        "Seleccione sus platos usando el enlace del menú que le enviamos. Cuando termine, le confirmaremos su pedido por aquí.",
	replyConfirmDone:          "¡Su pedido ha sido confirmado! Le avisaremos cuando esté listo.",
	replyConfirmReprompt:      "¿Desea confirmar su pedido? Responda 'confirmar' para confirmar o 'cancelar' para cancelar.",
	replyOrderConfirmedThanks: "¡Gracias por su orden! Nos pondremos en contacto pronto con los detalles de su pedido.",
	replyFallback:             "Lo siento, no entendí. ¿Podría repetir?",
}

// reply renders the text for a key, applying format args when present.
func reply(key replyKey, args ...interface{}) string {
	text, ok := replyText[key]
	if !ok {
		return replyText[replyFallback]
	}
	if len(args) == 0 {
		return text
	}
	return fmt.Sprintf(text, args...)
}
