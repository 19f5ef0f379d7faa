package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fondago/fonda-backend/internal/services"
	"github.com/fondago/fonda-backend/internal/storage"
)

func newWhatsAppTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := storage.NewMemoryStore()
	sessions := services.NewSessionService(store, time.Hour)
	engine := services.NewConversationEngine(sessions, "http://menu.test")
	whatsapp := services.NewWhatsAppService(store, engine)
	handler := NewWhatsAppHandler(whatsapp, nil)

	app := fiber.New()
	app.Post("/api/whatsapp/webhook", handler.HandleWebhook)
	app.Post("/test/whatsapp", handler.HandleTestWebhook)
	return app
}

func TestWebhookGreeting(t *testing.T) {
	app := newWhatsAppTestApp(t)

	form := url.Values{}
	form.Set("From", "whatsapp:+507000")
	form.Set("Body", "hola")
	form.Set("MessageSid", "SM123")

	req := httptest.NewRequest("POST", "/api/whatsapp/webhook", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}

	var result struct {
		Response string `json:"response"`
	}
	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !strings.Contains(result.Response, "delivery") || !strings.Contains(result.Response, "pickup") {
		t.Errorf("greeting reply should offer delivery and pickup, got %q", result.Response)
	}
}

func TestWebhookIgnoresStatusCallbacks(t *testing.T) {
	app := newWhatsAppTestApp(t)

	// Delivery status callbacks arrive with no Body; they get a bare ack
	form := url.Values{}
	form.Set("From", "whatsapp:+507000")
	form.Set("MessageSid", "SM456")

	req := httptest.NewRequest("POST", "/api/whatsapp/webhook", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}
}

func TestTestWebhookEndpoint(t *testing.T) {
	app := newWhatsAppTestApp(t)

	req := httptest.NewRequest("POST", "/test/whatsapp",
		strings.NewReader(`{"from":"+507000","message":"hola"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}

	var result struct {
		Success  bool   `json:"success"`
		Response string `json:"response"`
	}
	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !result.Success || result.Response == "" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestTestWebhookRequiresFields(t *testing.T) {
	app := newWhatsAppTestApp(t)

	req := httptest.NewRequest("POST", "/test/whatsapp", strings.NewReader(`{"from":"+507000"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusBadRequest)
	}
}
