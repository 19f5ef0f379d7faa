package routes

import (
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/fondago/fonda-backend/internal/handlers"
	"github.com/fondago/fonda-backend/internal/middleware"
	"github.com/fondago/fonda-backend/internal/services"
	"github.com/fondago/fonda-backend/internal/storage"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, store storage.Store, whatsappService *services.WhatsAppService, sessionService *services.SessionService, twilioService *services.TwilioService) {
	whatsappHandler := handlers.NewWhatsAppHandler(whatsappService, twilioService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	customerHandler := handlers.NewCustomerHandler(store)
	locationHandler := handlers.NewLocationHandler(store)
	menuHandler := handlers.NewMenuHandler(store)
	orderHandler := handlers.NewOrderHandler(store)

	api := app.Group("/api")

	// WhatsApp webhook - signature validation skipped in development
	whatsapp := api.Group("/whatsapp")
	if os.Getenv("ENVIRONMENT") == "development" || os.Getenv("DISABLE_WEBHOOK_VALIDATION") == "true" {
		whatsapp.Post("/webhook", whatsappHandler.HandleWebhook)
	} else {
		whatsapp.Post("/webhook", middleware.ValidateTwilioSignature(), whatsappHandler.HandleWebhook)
	}

	// Sessions - consumed by the frontend menu app
	sessions := api.Group("/sessions")
	sessions.Post("/", sessionHandler.Create)
	sessions.Post("/cleanup", sessionHandler.Cleanup)
	sessions.Get("/:token", sessionHandler.Get)
	sessions.Patch("/:token", sessionHandler.Update)
	sessions.Delete("/:token", sessionHandler.Delete)

	// Customers
	customers := api.Group("/customers")
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.GetAll)
	customers.Get("/phone/:phoneNumber", customerHandler.GetByPhone)
	customers.Get("/:id", customerHandler.Get)
	customers.Patch("/:id", customerHandler.Update)

	// Locations
	locations := api.Group("/locations")
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.GetAll)
	locations.Get("/:id", locationHandler.Get)
	locations.Patch("/:id", locationHandler.Update)

	// Menu
	menu := api.Group("/menu")
	menu.Post("/categories", menuHandler.CreateCategory)
	menu.Get("/categories", menuHandler.GetCategories)
	menu.Post("/items", menuHandler.CreateItem)
	menu.Get("/items", menuHandler.GetItems)
	menu.Get("/items/:id", menuHandler.GetItem)
	menu.Patch("/items/:id", menuHandler.UpdateItem)

	// Orders
	orders := api.Group("/orders")
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.GetAll)
	orders.Get("/:id", orderHandler.Get)
	orders.Patch("/:id", orderHandler.UpdateStatus)

	// Test WhatsApp endpoint (development only, no Twilio round-trip)
	app.Post("/test/whatsapp", whatsappHandler.HandleTestWebhook)
}
