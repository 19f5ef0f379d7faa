package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/fondago/fonda-backend/internal/models"
	"github.com/fondago/fonda-backend/internal/storage"
)

// WhatsAppService runs one conversation turn per inbound message:
// load-or-create the customer and conversation, advance the state
// machine, persist the result.
type WhatsAppService struct {
	store  storage.Store
	engine *ConversationEngine

	// Per-phone locks serialize turns for the same customer so a
	// stale read-modify-write (e.g. a webhook retry) cannot revert
	// forward progress.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewWhatsAppService creates a new WhatsApp service
func NewWhatsAppService(store storage.Store, engine *ConversationEngine) *WhatsAppService {
	return &WhatsAppService{
		store:  store,
		engine: engine,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (w *WhatsAppService) phoneLock(phone string) *sync.Mutex {
	w.mu.Lock()
	defer w.mu.Unlock()

	lock, exists := w.locks[phone]
	if !exists {
		lock = &sync.Mutex{}
		w.locks[phone] = lock
	}
	return lock
}

// ProcessMessage handles one inbound WhatsApp message and returns the
// reply to send back. Message content never produces an error - only a
// storage failure does, in which case the turn is not applied.
func (w *WhatsAppService) ProcessMessage(from, body string) (string, error) {
	phone := models.NormalizePhone(from)

	lock := w.phoneLock(phone)
	lock.Lock()
	defer lock.Unlock()

	log.Printf("📱 Processing message from %s: %s", phone, body)

	customer, err := w.store.FindOrCreateCustomerByPhone(phone)
	if err != nil {
		return "", fmt.Errorf("failed to load customer %s: %w", phone, err)
	}

	conversation, err := w.store.FindOrCreateConversation(customer.ID)
	if err != nil {
		return "", fmt.Errorf("failed to load conversation for customer %d: %w", customer.ID, err)
	}

	scratch := models.DecodeScratch(conversation.TemporaryData)

	result, err := w.engine.Advance(conversation.State, body, scratch, phone)
	if err != nil {
		return "", err
	}

	conversation.State = result.NextState
	conversation.TemporaryData = result.Scratch.Encode()
	conversation.LastMessageAt = time.Now()

	if err := w.store.UpdateConversation(conversation); err != nil {
		return "", fmt.Errorf("failed to persist conversation %d: %w", conversation.ID, err)
	}

	return result.Reply, nil
}
