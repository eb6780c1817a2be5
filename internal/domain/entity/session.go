package entity

import (
	"fmt"
	"time"
)

// ConfirmationState is the tri-state of a two-step user action.
type ConfirmationState string

const (
	ConfirmationPending   ConfirmationState = "pending"
	ConfirmationConfirmed ConfirmationState = "confirmed"
	ConfirmationCancelled ConfirmationState = "cancelled"
)

// ConfirmAction names an action that needs an explicit second step.
type ConfirmAction string

const (
	ConfirmActionLogout          ConfirmAction = "logout"
	ConfirmActionCompletePatient ConfirmAction = "complete_patient"
)

// Session is the state bound to one logged-in user. Confirmation flags live
// here, keyed by action and entity, instead of in any shared global.
type Session struct {
	ID            string                       `json:"id"`
	Username      string                       `json:"username"`
	Role          Role                         `json:"role"`
	LoggedInAt    time.Time                    `json:"logged_in_at"`
	Confirmations map[string]ConfirmationState `json:"confirmations,omitempty"`
}

// ConfirmationKey builds the map key for an action on an entity.
func ConfirmationKey(action ConfirmAction, entityID uint) string {
	return fmt.Sprintf("%s:%d", action, entityID)
}

// Confirmation returns the recorded state for the action, if any.
func (s *Session) Confirmation(action ConfirmAction, entityID uint) (ConfirmationState, bool) {
	state, ok := s.Confirmations[ConfirmationKey(action, entityID)]
	return state, ok
}

// SetConfirmation records state for the action.
func (s *Session) SetConfirmation(action ConfirmAction, entityID uint, state ConfirmationState) {
	if s.Confirmations == nil {
		s.Confirmations = make(map[string]ConfirmationState)
	}
	s.Confirmations[ConfirmationKey(action, entityID)] = state
}

// IsPending checks if the action is waiting for its second step
func (s *Session) IsPending(action ConfirmAction, entityID uint) bool {
	state, ok := s.Confirmation(action, entityID)
	return ok && state == ConfirmationPending
}
