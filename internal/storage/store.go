package storage

import (
	"errors"
	"time"

	"github.com/fondago/fonda-backend/internal/models"
)

// ErrNotFound is returned by keyed lookups when no row matches.
// Handlers map it to a 404.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for storage operations
type Store interface {
	// Customer operations
	CreateCustomer(customer *models.Customer) (*models.Customer, error)
	GetCustomer(id uint) (*models.Customer, error)
	GetCustomerByPhone(phone string) (*models.Customer, error)
	FindOrCreateCustomerByPhone(phone string) (*models.Customer, error)
	GetAllCustomers() ([]*models.Customer, error)
	UpdateCustomer(customer *models.Customer) error

	// Conversation operations - one conversation per customer, reused for life
	GetConversationByCustomer(customerID uint) (*models.Conversation, error)
	FindOrCreateConversation(customerID uint) (*models.Conversation, error)
	UpdateConversation(conversation *models.Conversation) error

	// Session operations
	CreateSession(session *models.Session) (*models.Session, error)
	GetSessionByToken(token string) (*models.Session, error)
	UpdateSession(session *models.Session) error
	DeleteSessionByToken(token string) error
	DeleteExpiredSessions(now time.Time) (int64, error)

	// Location operations
	CreateLocation(location *models.Location) (*models.Location, error)
	GetLocation(id uint) (*models.Location, error)
	GetAllLocations() ([]*models.Location, error)
	UpdateLocation(location *models.Location) error

	// Menu operations
	CreateMenuCategory(category *models.MenuCategory) (*models.MenuCategory, error)
	GetMenuCategories() ([]*models.MenuCategory, error)
	CreateMenuItem(item *models.MenuItem) (*models.MenuItem, error)
	GetMenuItem(id uint) (*models.MenuItem, error)
	GetMenuItems() ([]*models.MenuItem, error)
	UpdateMenuItem(item *models.MenuItem) error

	// Order operations
	CreateOrder(order *models.Order) (*models.Order, error)
	GetOrder(id uint) (*models.Order, error)
	GetAllOrders() ([]*models.Order, error)
	UpdateOrderStatus(id uint, status string) error
}
