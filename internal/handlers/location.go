package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/fondago/fonda-backend/internal/models"
	"github.com/fondago/fonda-backend/internal/storage"
)

// LocationHandler handles restaurant location CRUD requests
type LocationHandler struct {
	store storage.Store
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(store storage.Store) *LocationHandler {
	return &LocationHandler{store: store}
}

// CreateLocationRequest is the body of POST /api/locations
type CreateLocationRequest struct {
	Name                  string  `json:"name"`
	Address               string  `json:"address"`
	Latitude              float64 `json:"latitude"`
	Longitude             float64 `json:"longitude"`
	CashierPhone          string  `json:"cashier_phone"`
	DeliveryRadius        float64 `json:"delivery_radius"`
	MinimumOrder          float64 `json:"minimum_order"`
	EstimatedDeliveryTime int     `json:"estimated_delivery_time"`
}

// Create handles POST /api/locations
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var req CreateLocationRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Name == "" || req.Address == "" || req.CashierPhone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name, address, and cashier phone are required",
		})
	}

	location, err := h.store.CreateLocation(&models.Location{
		Name:                  req.Name,
		Address:               req.Address,
		Latitude:              req.Latitude,
		Longitude:             req.Longitude,
		CashierPhone:          req.CashierPhone,
		DeliveryRadius:        req.DeliveryRadius,
		MinimumOrder:          req.MinimumOrder,
		EstimatedDeliveryTime: req.EstimatedDeliveryTime,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create location",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(location)
}

// Get handles GET /api/locations/:id
func (h *LocationHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid location ID",
		})
	}

	location, err := h.store.GetLocation(uint(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Location not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get location",
		})
	}

	return c.JSON(location)
}

// GetAll handles GET /api/locations
func (h *LocationHandler) GetAll(c *fiber.Ctx) error {
	locations, err := h.store.GetAllLocations()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list locations",
		})
	}

	return c.JSON(locations)
}

// Update handles PATCH /api/locations/:id
func (h *LocationHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid location ID",
		})
	}

	location, err := h.store.GetLocation(uint(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Location not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get location",
		})
	}

	if err := c.BodyParser(location); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.store.UpdateLocation(location); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update location",
		})
	}

	return c.JSON(location)
}
