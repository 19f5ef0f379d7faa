package storage

import (
	"sync"
	"time"

	"github.com/fondago/fonda-backend/internal/models"
)

// MemoryStore holds all data in memory. Used for local development
// (USE_MEMORY_STORE=true) and as the test double in package tests.
type MemoryStore struct {
	customers     map[uint]*models.Customer
	conversations map[uint]*models.Conversation // keyed by customer ID
	sessions      map[string]*models.Session    // keyed by token
	locations     map[uint]*models.Location
	categories    map[uint]*models.MenuCategory
	menuItems     map[uint]*models.MenuItem
	orders        map[uint]*models.Order

	// Mutexes for thread safety
	customerMu sync.RWMutex
	convMu     sync.RWMutex
	sessionMu  sync.RWMutex
	locationMu sync.RWMutex
	menuMu     sync.RWMutex
	orderMu    sync.RWMutex

	// Counters for ID generation
	customerCounter uint
	convCounter     uint
	sessionCounter  uint
	locationCounter uint
	categoryCounter uint
	itemCounter     uint
	orderCounter    uint
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		customers:     make(map[uint]*models.Customer),
		conversations: make(map[uint]*models.Conversation),
		sessions:      make(map[string]*models.Session),
		locations:     make(map[uint]*models.Location),
		categories:    make(map[uint]*models.MenuCategory),
		menuItems:     make(map[uint]*models.MenuItem),
		orders:        make(map[uint]*models.Order),
	}
}

// Customer operations

func (m *MemoryStore) CreateCustomer(customer *models.Customer) (*models.Customer, error) {
	m.customerMu.Lock()
	defer m.customerMu.Unlock()

	customer.PhoneNumber = models.NormalizePhone(customer.PhoneNumber)
	m.customerCounter++
	customer.ID = m.customerCounter
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = time.Now()

	m.customers[customer.ID] = customer
	return customer, nil
}

func (m *MemoryStore) GetCustomer(id uint) (*models.Customer, error) {
	m.customerMu.RLock()
	defer m.customerMu.RUnlock()

	customer, exists := m.customers[id]
	if !exists {
		return nil, ErrNotFound
	}
	return customer, nil
}

func (m *MemoryStore) GetCustomerByPhone(phone string) (*models.Customer, error) {
	m.customerMu.RLock()
	defer m.customerMu.RUnlock()

	phone = models.NormalizePhone(phone)
	for _, customer := range m.customers {
		if customer.PhoneNumber == phone {
			return customer, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) FindOrCreateCustomerByPhone(phone string) (*models.Customer, error) {
	if customer, err := m.GetCustomerByPhone(phone); err == nil {
		return customer, nil
	}
	return m.CreateCustomer(&models.Customer{PhoneNumber: phone})
}

func (m *MemoryStore) GetAllCustomers() ([]*models.Customer, error) {
	m.customerMu.RLock()
	defer m.customerMu.RUnlock()

	customers := make([]*models.Customer, 0, len(m.customers))
	for _, customer := range m.customers {
		customers = append(customers, customer)
	}
	return customers, nil
}

func (m *MemoryStore) UpdateCustomer(customer *models.Customer) error {
	m.customerMu.Lock()
	defer m.customerMu.Unlock()

	if _, exists := m.customers[customer.ID]; !exists {
		return ErrNotFound
	}
	customer.UpdatedAt = time.Now()
	m.customers[customer.ID] = customer
	return nil
}

// Conversation operations

func (m *MemoryStore) GetConversationByCustomer(customerID uint) (*models.Conversation, error) {
	m.convMu.RLock()
	defer m.convMu.RUnlock()

	conversation, exists := m.conversations[customerID]
	if !exists {
		return nil, ErrNotFound
	}
	return conversation, nil
}

func (m *MemoryStore) FindOrCreateConversation(customerID uint) (*models.Conversation, error) {
	m.convMu.Lock()
	defer m.convMu.Unlock()

	if conversation, exists := m.conversations[customerID]; exists {
		return conversation, nil
	}

	m.convCounter++
	conversation := &models.Conversation{
		CustomerID:    customerID,
		State:         models.StateGreeting,
		LastMessageAt: time.Now(),
	}
	conversation.ID = m.convCounter
	conversation.CreatedAt = time.Now()
	conversation.UpdatedAt = time.Now()

	m.conversations[customerID] = conversation
	return conversation, nil
}

func (m *MemoryStore) UpdateConversation(conversation *models.Conversation) error {
	m.convMu.Lock()
	defer m.convMu.Unlock()

	if _, exists := m.conversations[conversation.CustomerID]; !exists {
		return ErrNotFound
	}
	conversation.UpdatedAt = time.Now()
	m.conversations[conversation.CustomerID] = conversation
	return nil
}

// Session operations

func (m *MemoryStore) CreateSession(session *models.Session) (*models.Session, error) {
	m.sessionMu.Lock()
	defer m.sessionMu.Unlock()

	m.sessionCounter++
	session.ID = m.sessionCounter
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	session.UpdatedAt = session.CreatedAt

	m.sessions[session.Token] = session
	return session, nil
}

func (m *MemoryStore) GetSessionByToken(token string) (*models.Session, error) {
	m.sessionMu.RLock()
	defer m.sessionMu.RUnlock()

	session, exists := m.sessions[token]
	if !exists {
		return nil, ErrNotFound
	}
	return session, nil
}

func (m *MemoryStore) UpdateSession(session *models.Session) error {
	m.sessionMu.Lock()
	defer m.sessionMu.Unlock()

	if _, exists := m.sessions[session.Token]; !exists {
		return ErrNotFound
	}
	session.UpdatedAt = time.Now()
	m.sessions[session.Token] = session
	return nil
}

func (m *MemoryStore) DeleteSessionByToken(token string) error {
	m.sessionMu.Lock()
	defer m.sessionMu.Unlock()

	if _, exists := m.sessions[token]; !exists {
		return ErrNotFound
	}
	delete(m.sessions, token)
	return nil
}

func (m *MemoryStore) DeleteExpiredSessions(now time.Time) (int64, error) {
	m.sessionMu.Lock()
	defer m.sessionMu.Unlock()

	var removed int64
	for token, session := range m.sessions {
		if !session.ExpiresAt.After(now) {
			delete(m.sessions, token)
			removed++
		}
	}
	return removed, nil
}

// Location operations

func (m *MemoryStore) CreateLocation(location *models.Location) (*models.Location, error) {
	m.locationMu.Lock()
	defer m.locationMu.Unlock()

	m.locationCounter++
	location.ID = m.locationCounter
	location.CreatedAt = time.Now()
	location.UpdatedAt = time.Now()

	m.locations[location.ID] = location
	return location, nil
}

func (m *MemoryStore) GetLocation(id uint) (*models.Location, error) {
	m.locationMu.RLock()
	defer m.locationMu.RUnlock()

	location, exists := m.locations[id]
	if !exists {
		return nil, ErrNotFound
	}
	return location, nil
}

func (m *MemoryStore) GetAllLocations() ([]*models.Location, error) {
	m.locationMu.RLock()
	defer m.locationMu.RUnlock()

	locations := make([]*models.Location, 0, len(m.locations))
	for _, location := range m.locations {
		locations = append(locations, location)
	}
	return locations, nil
}

func (m *MemoryStore) UpdateLocation(location *models.Location) error {
	m.locationMu.Lock()
	defer m.locationMu.Unlock()

	if _, exists := m.locations[location.ID]; !exists {
		return ErrNotFound
	}
	location.UpdatedAt = time.Now()
	m.locations[location.ID] = location
	return nil
}

// Menu operations

func (m *MemoryStore) CreateMenuCategory(category *models.MenuCategory) (*models.MenuCategory, error) {
	m.menuMu.Lock()
	defer m.menuMu.Unlock()

	m.categoryCounter++
	category.ID = m.categoryCounter
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()

	m.categories[category.ID] = category
	return category, nil
}

func (m *MemoryStore) GetMenuCategories() ([]*models.MenuCategory, error) {
	m.menuMu.RLock()
	defer m.menuMu.RUnlock()

	categories := make([]*models.MenuCategory, 0, len(m.categories))
	for _, category := range m.categories {
		withItems := *category
		withItems.Items = nil
		for _, item := range m.menuItems {
			if item.CategoryID == category.ID {
				withItems.Items = append(withItems.Items, *item)
			}
		}
		categories = append(categories, &withItems)
	}
	return categories, nil
}

func (m *MemoryStore) CreateMenuItem(item *models.MenuItem) (*models.MenuItem, error) {
	m.menuMu.Lock()
	defer m.menuMu.Unlock()

	m.itemCounter++
	item.ID = m.itemCounter
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()

	m.menuItems[item.ID] = item
	return item, nil
}

func (m *MemoryStore) GetMenuItem(id uint) (*models.MenuItem, error) {
	m.menuMu.RLock()
	defer m.menuMu.RUnlock()

	item, exists := m.menuItems[id]
	if !exists {
		return nil, ErrNotFound
	}
	return item, nil
}

func (m *MemoryStore) GetMenuItems() ([]*models.MenuItem, error) {
	m.menuMu.RLock()
	defer m.menuMu.RUnlock()

	items := make([]*models.MenuItem, 0, len(m.menuItems))
	for _, item := range m.menuItems {
		items = append(items, item)
	}
	return items, nil
}

func (m *MemoryStore) UpdateMenuItem(item *models.MenuItem) error {
	m.menuMu.Lock()
	defer m.menuMu.Unlock()

	if _, exists := m.menuItems[item.ID]; !exists {
		return ErrNotFound
	}
	item.UpdatedAt = time.Now()
	m.menuItems[item.ID] = item
	return nil
}

// Order operations

func (m *MemoryStore) CreateOrder(order *models.Order) (*models.Order, error) {
	m.orderMu.Lock()
	defer m.orderMu.Unlock()

	m.orderCounter++
	order.ID = m.orderCounter
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()

	m.orders[order.ID] = order
	return order, nil
}

func (m *MemoryStore) GetOrder(id uint) (*models.Order, error) {
	m.orderMu.RLock()
	defer m.orderMu.RUnlock()

	order, exists := m.orders[id]
	if !exists {
		return nil, ErrNotFound
	}
	return order, nil
}

func (m *MemoryStore) GetAllOrders() ([]*models.Order, error) {
	m.orderMu.RLock()
	defer m.orderMu.RUnlock()

	orders := make([]*models.Order, 0, len(m.orders))
	for _, order := range m.orders {
		orders = append(orders, order)
	}
	return orders, nil
}

func (m *MemoryStore) UpdateOrderStatus(id uint, status string) error {
	m.orderMu.Lock()
	defer m.orderMu.Unlock()

	order, exists := m.orders[id]
	if !exists {
		return ErrNotFound
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	return nil
}
