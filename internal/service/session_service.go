package service

import (
	"context"
	"errors"
	"time"

	"clinic-management/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrSessionNotFound        = errors.New("session not found or expired")
	ErrConfirmationNotPending = errors.New("no pending confirmation for this action")
)

// SessionStore persists sessions by id. Get and Update return
// ErrSessionNotFound for unknown or expired ids.
type SessionStore interface {
	Create(ctx context.Context, session *entity.Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*entity.Session, error)
	// Update replaces the session without extending its lifetime.
	Update(ctx context.Context, session *entity.Session) error
	Delete(ctx context.Context, id string) error
}

type SessionService interface {
	Start(ctx context.Context, username string, role entity.Role) (*entity.Session, error)
	Get(ctx context.Context, sessionID string) (*entity.Session, error)
	End(ctx context.Context, sessionID string) error

	RequestConfirmation(ctx context.Context, sessionID string, action entity.ConfirmAction, entityID uint) error
	// EnsurePending fails with ErrConfirmationNotPending unless a request is waiting.
	EnsurePending(ctx context.Context, sessionID string, action entity.ConfirmAction, entityID uint) error
	// ResolveConfirmation moves a pending request to confirmed or cancelled.
	ResolveConfirmation(ctx context.Context, sessionID string, action entity.ConfirmAction, entityID uint, state entity.ConfirmationState) error
}

type sessionService struct {
	store SessionStore
	ttl   time.Duration
	log   *logrus.Logger
	now   func() time.Time
}

func NewSessionService(store SessionStore, ttl time.Duration, log *logrus.Logger) SessionService {
	return &sessionService{
		store: store,
		ttl:   ttl,
		log:   log,
		now:   time.Now,
	}
}

func (s *sessionService) Start(ctx context.Context, username string, role entity.Role) (*entity.Session, error) {
	session := &entity.Session{
		ID:            uuid.New().String(),
		Username:      username,
		Role:          role,
		LoggedInAt:    s.now().UTC(),
		Confirmations: map[string]entity.ConfirmationState{},
	}

	if err := s.store.Create(ctx, session, s.ttl); err != nil {
		s.log.Warnf("Failed to create session: %+v", err)
		return nil, err
	}

	return session, nil
}

func (s *sessionService) Get(ctx context.Context, sessionID string) (*entity.Session, error) {
	return s.store.Get(ctx, sessionID)
}

func (s *sessionService) End(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		s.log.Warnf("Failed to delete session: %+v", err)
		return err
	}
	return nil
}

func (s *sessionService) RequestConfirmation(ctx context.Context, sessionID string, action entity.ConfirmAction, entityID uint) error {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	session.SetConfirmation(action, entityID, entity.ConfirmationPending)
	return s.store.Update(ctx, session)
}

func (s *sessionService) EnsurePending(ctx context.Context, sessionID string, action entity.ConfirmAction, entityID uint) error {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if !session.IsPending(action, entityID) {
		return ErrConfirmationNotPending
	}
	return nil
}

func (s *sessionService) ResolveConfirmation(ctx context.Context, sessionID string, action entity.ConfirmAction, entityID uint, state entity.ConfirmationState) error {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if !session.IsPending(action, entityID) {
		return ErrConfirmationNotPending
	}

	session.SetConfirmation(action, entityID, state)
	return s.store.Update(ctx, session)
}
