package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/fondago/fonda-backend/internal/services"
)

// WhatsAppHandler handles WhatsApp webhook requests
type WhatsAppHandler struct {
	whatsappService *services.WhatsAppService
	twilioService   *services.TwilioService // nil when Twilio is not configured
}

// NewWhatsAppHandler creates a new WhatsApp handler
func NewWhatsAppHandler(whatsappService *services.WhatsAppService, twilioService *services.TwilioService) *WhatsAppHandler {
	return &WhatsAppHandler{
		whatsappService: whatsappService,
		twilioService:   twilioService,
	}
}

// TwilioWebhookPayload represents an incoming WhatsApp message from Twilio
type TwilioWebhookPayload struct {
	MessageSid string `form:"MessageSid"`
	AccountSid string `form:"AccountSid"`
	From       string `form:"From"` // WhatsApp number (whatsapp:+50760001234)
	To         string `form:"To"`   // Our Twilio number
	Body       string `form:"Body"` // Message text
	NumMedia   string `form:"NumMedia"`
}

// HandleWebhook processes incoming WhatsApp messages
func (h *WhatsAppHandler) HandleWebhook(c *fiber.Ctx) error {
	var payload TwilioWebhookPayload

	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing webhook: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook payload",
		})
	}

	// Status callbacks arrive on the same URL with no body; just ack them
	if payload.Body == "" || payload.From == "" {
		return c.SendStatus(fiber.StatusOK)
	}

	response, err := h.whatsappService.ProcessMessage(payload.From, payload.Body)
	if err != nil {
		log.Printf("Error processing message %s: %v", payload.MessageSid, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process message",
		})
	}

	if h.twilioService != nil && response != "" {
		phone := payload.From
		if len(phone) > 9 && phone[:9] == "whatsapp:" {
			phone = phone[9:]
		}
		if err := h.twilioService.SendWhatsAppMessage(phone, response); err != nil {
			log.Printf("❌ Failed to send WhatsApp response to %s: %v", phone, err)
		}
	} else {
		log.Printf("📤 Response (not sent - Twilio not configured): %s", response)
	}

	return c.JSON(fiber.Map{
		"response": response,
	})
}

// TestWebhookPayload is the JSON shape of the development test endpoint
type TestWebhookPayload struct {
	From    string `json:"from"`
	Message string `json:"message"`
}

// HandleTestWebhook processes test WhatsApp messages (for development,
// no Twilio signature and no outbound send)
func (h *WhatsAppHandler) HandleTestWebhook(c *fiber.Ctx) error {
	var payload TestWebhookPayload

	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid test payload",
		})
	}

	if payload.From == "" || payload.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Both from and message are required",
		})
	}

	response, err := h.whatsappService.ProcessMessage(payload.From, payload.Message)
	if err != nil {
		log.Printf("Error processing test message: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process message",
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"response": response,
	})
}
