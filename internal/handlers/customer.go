package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fondago/fonda-backend/internal/models"
	"github.com/fondago/fonda-backend/internal/storage"
)

// CustomerHandler handles customer CRUD requests
type CustomerHandler struct {
	store storage.Store
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(store storage.Store) *CustomerHandler {
	return &CustomerHandler{store: store}
}

// CreateCustomerRequest is the body of POST /api/customers
type CreateCustomerRequest struct {
	PhoneNumber string `json:"phone_number"`
	Name        string `json:"name"`
}

// UpdateCustomerRequest is the body of PATCH /api/customers/:id
type UpdateCustomerRequest struct {
	Name           *string `json:"name"`
	TouchLastOrder bool    `json:"touch_last_order"` // true marks an order placed now
}

// Create handles POST /api/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var req CreateCustomerRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.PhoneNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Phone number is required",
		})
	}

	customer, err := h.store.CreateCustomer(&models.Customer{
		PhoneNumber: req.PhoneNumber,
		Name:        req.Name,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create customer",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(customer)
}

// Get handles GET /api/customers/:id
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid customer ID",
		})
	}

	customer, err := h.store.GetCustomer(uint(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Customer not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get customer",
		})
	}

	return c.JSON(customer)
}

// GetByPhone handles GET /api/customers/phone/:phoneNumber
func (h *CustomerHandler) GetByPhone(c *fiber.Ctx) error {
	customer, err := h.store.GetCustomerByPhone(c.Params("phoneNumber"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Customer not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get customer",
		})
	}

	return c.JSON(customer)
}

// GetAll handles GET /api/customers
func (h *CustomerHandler) GetAll(c *fiber.Ctx) error {
	customers, err := h.store.GetAllCustomers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list customers",
		})
	}

	return c.JSON(customers)
}

// Update handles PATCH /api/customers/:id
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid customer ID",
		})
	}

	var req UpdateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	customer, err := h.store.GetCustomer(uint(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Customer not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get customer",
		})
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.TouchLastOrder {
		now := time.Now()
		customer.LastOrderDate = &now
	}

	if err := h.store.UpdateCustomer(customer); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update customer",
		})
	}

	return c.JSON(customer)
}
