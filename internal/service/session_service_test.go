package service

import (
	"context"
	"io"
	"testing"
	"time"

	"clinic-management/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestSessionService_ConfirmationFlow(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(NewMemorySessionStore(time.Minute), time.Hour, quietLogger())

	session, err := svc.Start(ctx, "Dr. Das", entity.RoleDoctor)
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)

	// Nothing requested yet.
	assert.ErrorIs(t, svc.EnsurePending(ctx, session.ID, entity.ConfirmActionCompletePatient, 3), ErrConfirmationNotPending)
	assert.ErrorIs(t, svc.ResolveConfirmation(ctx, session.ID, entity.ConfirmActionCompletePatient, 3, entity.ConfirmationConfirmed), ErrConfirmationNotPending)

	require.NoError(t, svc.RequestConfirmation(ctx, session.ID, entity.ConfirmActionCompletePatient, 3))
	assert.NoError(t, svc.EnsurePending(ctx, session.ID, entity.ConfirmActionCompletePatient, 3))
	assert.ErrorIs(t, svc.EnsurePending(ctx, session.ID, entity.ConfirmActionCompletePatient, 4), ErrConfirmationNotPending)

	require.NoError(t, svc.ResolveConfirmation(ctx, session.ID, entity.ConfirmActionCompletePatient, 3, entity.ConfirmationCancelled))

	stored, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	state, ok := stored.Confirmation(entity.ConfirmActionCompletePatient, 3)
	assert.True(t, ok)
	assert.Equal(t, entity.ConfirmationCancelled, state)

	// A resolved request cannot be resolved again.
	assert.ErrorIs(t, svc.ResolveConfirmation(ctx, session.ID, entity.ConfirmActionCompletePatient, 3, entity.ConfirmationConfirmed), ErrConfirmationNotPending)
}

func TestSessionService_ConfirmationsAreScopedToSession(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(NewMemorySessionStore(time.Minute), time.Hour, quietLogger())

	first, err := svc.Start(ctx, "Dr. Das", entity.RoleDoctor)
	require.NoError(t, err)
	second, err := svc.Start(ctx, "Dr. Das", entity.RoleDoctor)
	require.NoError(t, err)

	require.NoError(t, svc.RequestConfirmation(ctx, first.ID, entity.ConfirmActionLogout, 0))

	assert.NoError(t, svc.EnsurePending(ctx, first.ID, entity.ConfirmActionLogout, 0))
	assert.ErrorIs(t, svc.EnsurePending(ctx, second.ID, entity.ConfirmActionLogout, 0), ErrConfirmationNotPending)
}

func TestSessionService_End(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(NewMemorySessionStore(time.Minute), time.Hour, quietLogger())

	session, err := svc.Start(ctx, "admin", entity.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, svc.End(ctx, session.ID))

	_, err = svc.Get(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, svc.RequestConfirmation(ctx, session.ID, entity.ConfirmActionLogout, 0), ErrSessionNotFound)
}
