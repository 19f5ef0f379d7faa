package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/fondago/fonda-backend/internal/models"
	"github.com/fondago/fonda-backend/internal/storage"
)

// TurnResult is what one conversation turn produces. The caller is
// responsible for persisting NextState and Scratch.
type TurnResult struct {
	Reply     string
	NextState models.ConversationState
	Scratch   models.Scratch
}

// ConversationEngine decides how to answer an inbound WhatsApp message.
// It is pure with respect to its inputs except for creating/updating the
// menu-browsing session when the flow calls for it.
type ConversationEngine struct {
	sessions        *SessionService
	frontendBaseURL string
}

// NewConversationEngine creates the engine. frontendBaseURL is where the
// web menu app lives; menu links are built from it.
func NewConversationEngine(sessions *SessionService, frontendBaseURL string) *ConversationEngine {
	return &ConversationEngine{
		sessions:        sessions,
		frontendBaseURL: strings.TrimSuffix(frontendBaseURL, "/"),
	}
}

// MenuLink builds the customer-facing menu URL for a session token.
// The token is the only linkage between the chat flow and the web flow.
func (e *ConversationEngine) MenuLink(token string) string {
	return fmt.Sprintf("%s/menu?token=%s", e.frontendBaseURL, token)
}

// Advance interprets one inbound message against the current state and
// returns the reply, the next state and the updated scratch data.
//
// The machine is intentionally forgiving: every state has a re-prompt
// branch, so bad input never returns an error - only a session
// persistence failure does.
func (e *ConversationEngine) Advance(state models.ConversationState, body string, scratch models.Scratch, phone string) (*TurnResult, error) {
	switch state {
	case models.StateGreeting:
		return &TurnResult{
			Reply:     reply(replyGreetingWelcome),
			NextState: models.StateSelectingType,
			Scratch:   scratch,
		}, nil

	case models.StateSelectingType:
		return e.advanceSelectingType(body, scratch, phone)

	case models.StateAwaitingAddress:
		return e.advanceAwaitingAddress(body, scratch)

	case models.StateSelectingItems:
		return &TurnResult{
			Reply:     reply(replyItemsReminder),
			NextState: models.StateSelectingItems,
			Scratch:   scratch,
		}, nil

	case models.StateConfirmingOrder:
		if isConfirmation(body) {
			return &TurnResult{
				Reply:     reply(replyConfirmDone),
				NextState: models.StateOrderConfirmed,
				Scratch:   scratch,
			}, nil
		}
		return &TurnResult{
			Reply:     reply(replyConfirmReprompt),
			NextState: models.StateConfirmingOrder,
			Scratch:   scratch,
		}, nil

	case models.StateOrderConfirmed:
		return &TurnResult{
			Reply:     reply(replyOrderConfirmedThanks),
			NextState: models.StateOrderConfirmed,
			Scratch:   scratch,
		}, nil

	default:
		// Legacy rows can carry states from older versions of the flow.
		// Reset to the start of the dialogue, keeping the scratch data.
		log.Printf("⚠️  Unknown conversation state %q, resetting to greeting", state)
		return &TurnResult{
			Reply:     reply(replyFallback),
			NextState: models.StateGreeting,
			Scratch:   scratch,
		}, nil
	}
}

// advanceSelectingType handles the delivery-vs-pickup choice. A match
// mints the menu-browsing session; anything else re-prompts.
func (e *ConversationEngine) advanceSelectingType(body string, scratch models.Scratch, phone string) (*TurnResult, error) {
	msg := strings.ToLower(body)

	var orderType string
	var chosenKey replyKey
	switch {
	case strings.Contains(msg, models.OrderTypeDelivery):
		orderType = models.OrderTypeDelivery
		chosenKey = replyTypeChosenDelivery
	case strings.Contains(msg, models.OrderTypePickup):
		orderType = models.OrderTypePickup
		chosenKey = replyTypeChosenPickup
	default:
		return &TurnResult{
			Reply:     reply(replyTypeReprompt),
			NextState: models.StateSelectingType,
			Scratch:   scratch,
		}, nil
	}

	session, err := e.sessions.Create(phone)
	if err != nil {
		return nil, fmt.Errorf("failed to create session for %s: %w", phone, err)
	}

	scratch.OrderType = orderType
	scratch.SessionToken = session.Token

	return &TurnResult{
		Reply:     reply(chosenKey, e.MenuLink(session.Token)),
		NextState: models.StateAwaitingAddress,
		Scratch:   scratch,
	}, nil
}

// advanceAwaitingAddress records the address (or pickup location) and
// moves the session to menu_sent. The address text is not validated -
// the cashier reads it as-is.
func (e *ConversationEngine) advanceAwaitingAddress(body string, scratch models.Scratch) (*TurnResult, error) {
	address := strings.TrimSpace(body)

	ackKey := replyAddressAckDelivery
	if scratch.OrderType == models.OrderTypePickup {
		scratch.PickupLocation = address
		ackKey = replyAddressAckPickup
	} else {
		scratch.Address = address
	}

	replyBody := reply(replyItemsReminder)
	if scratch.SessionToken != "" {
		menuSent := models.SessionMenuSent
		_, err := e.sessions.UpdateByToken(scratch.SessionToken, SessionUpdate{State: &menuSent})
		switch {
		case errors.Is(err, storage.ErrNotFound):
			// Session already expired or cleaned up; the turn still
			// proceeds - the customer gets a fresh link next time.
			log.Printf("⚠️  Session %s gone while recording address", scratch.SessionToken)
		case err != nil:
			return nil, fmt.Errorf("failed to update session %s: %w", scratch.SessionToken, err)
		default:
			replyBody = reply(ackKey, e.MenuLink(scratch.SessionToken))
		}
	}

	return &TurnResult{
		Reply:     replyBody,
		NextState: models.StateSelectingItems,
		Scratch:   scratch,
	}, nil
}

// isConfirmation matches an order confirmation in either language the
// flow speaks.
func isConfirmation(body string) bool {
	msg := strings.ToLower(strings.TrimSpace(body))
	return msg == "confirm" || msg == "confirmar"
}
