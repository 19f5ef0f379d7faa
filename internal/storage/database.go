package storage

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/fondago/fonda-backend/internal/models"
)

// DatabaseStore implements Store on top of GORM/PostgreSQL
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a database-backed store
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Customer operations

func (d *DatabaseStore) CreateCustomer(customer *models.Customer) (*models.Customer, error) {
	if err := d.db.Create(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

func (d *DatabaseStore) GetCustomer(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := d.db.First(&customer, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &customer, nil
}

func (d *DatabaseStore) GetCustomerByPhone(phone string) (*models.Customer, error) {
	var customer models.Customer
	err := d.db.Where("phone_number = ?", models.NormalizePhone(phone)).First(&customer).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &customer, nil
}

func (d *DatabaseStore) FindOrCreateCustomerByPhone(phone string) (*models.Customer, error) {
	var customer models.Customer
	err := d.db.
		Where(models.Customer{PhoneNumber: models.NormalizePhone(phone)}).
		FirstOrCreate(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (d *DatabaseStore) GetAllCustomers() ([]*models.Customer, error) {
	var customers []*models.Customer
	if err := d.db.Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (d *DatabaseStore) UpdateCustomer(customer *models.Customer) error {
	return d.db.Save(customer).Error
}

// Conversation operations

func (d *DatabaseStore) GetConversationByCustomer(customerID uint) (*models.Conversation, error) {
	var conversation models.Conversation
	err := d.db.Where("customer_id = ?", customerID).First(&conversation).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &conversation, nil
}

func (d *DatabaseStore) FindOrCreateConversation(customerID uint) (*models.Conversation, error) {
	var conversation models.Conversation
	err := d.db.
		Where(models.Conversation{CustomerID: customerID}).
		Attrs(models.Conversation{State: models.StateGreeting, LastMessageAt: time.Now()}).
		FirstOrCreate(&conversation).Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (d *DatabaseStore) UpdateConversation(conversation *models.Conversation) error {
	return d.db.Save(conversation).Error
}

// Session operations

func (d *DatabaseStore) CreateSession(session *models.Session) (*models.Session, error) {
	if err := d.db.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

func (d *DatabaseStore) GetSessionByToken(token string) (*models.Session, error) {
	var session models.Session
	if err := d.db.Where("token = ?", token).First(&session).Error; err != nil {
		return nil, translateError(err)
	}
	return &session, nil
}

func (d *DatabaseStore) UpdateSession(session *models.Session) error {
	return d.db.Save(session).Error
}

func (d *DatabaseStore) DeleteSessionByToken(token string) error {
	result := d.db.Where("token = ?", token).Delete(&models.Session{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *DatabaseStore) DeleteExpiredSessions(now time.Time) (int64, error) {
	result := d.db.Where("expires_at <= ?", now).Delete(&models.Session{})
	return result.RowsAffected, result.Error
}

// Location operations

func (d *DatabaseStore) CreateLocation(location *models.Location) (*models.Location, error) {
	if err := d.db.Create(location).Error; err != nil {
		return nil, err
	}
	return location, nil
}

func (d *DatabaseStore) GetLocation(id uint) (*models.Location, error) {
	var location models.Location
	if err := d.db.First(&location, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &location, nil
}

func (d *DatabaseStore) GetAllLocations() ([]*models.Location, error) {
	var locations []*models.Location
	if err := d.db.Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

func (d *DatabaseStore) UpdateLocation(location *models.Location) error {
	return d.db.Save(location).Error
}

// Menu operations

func (d *DatabaseStore) CreateMenuCategory(category *models.MenuCategory) (*models.MenuCategory, error) {
	if err := d.db.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (d *DatabaseStore) GetMenuCategories() ([]*models.MenuCategory, error) {
	var categories []*models.MenuCategory
	if err := d.db.Preload("Items").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (d *DatabaseStore) CreateMenuItem(item *models.MenuItem) (*models.MenuItem, error) {
	if err := d.db.Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (d *DatabaseStore) GetMenuItem(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := d.db.First(&item, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &item, nil
}

func (d *DatabaseStore) GetMenuItems() ([]*models.MenuItem, error) {
	var items []*models.MenuItem
	if err := d.db.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (d *DatabaseStore) UpdateMenuItem(item *models.MenuItem) error {
	return d.db.Save(item).Error
}

// Order operations

func (d *DatabaseStore) CreateOrder(order *models.Order) (*models.Order, error) {
	if err := d.db.Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (d *DatabaseStore) GetOrder(id uint) (*models.Order, error) {
	var order models.Order
	if err := d.db.Preload("Items").First(&order, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &order, nil
}

func (d *DatabaseStore) GetAllOrders() ([]*models.Order, error) {
	var orders []*models.Order
	if err := d.db.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (d *DatabaseStore) UpdateOrderStatus(id uint, status string) error {
	result := d.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
