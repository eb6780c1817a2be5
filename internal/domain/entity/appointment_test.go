package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointment_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{AppointmentStatusScheduled, AppointmentStatusCancellationRequested, true},
		{AppointmentStatusScheduled, AppointmentStatusCancelled, false},
		{AppointmentStatusCancellationRequested, AppointmentStatusCancelled, true},
		{AppointmentStatusCancellationRequested, AppointmentStatusScheduled, true},
		{AppointmentStatusCancelled, AppointmentStatusScheduled, false},
		{AppointmentStatusCancelled, AppointmentStatusCancellationRequested, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+" to "+string(tt.to), func(t *testing.T) {
			a := &Appointment{Status: tt.from}
			assert.Equal(t, tt.want, a.CanTransitionTo(tt.to))
		})
	}
}

func TestAppointment_RequestCancellation(t *testing.T) {
	t.Run("trims and records reason", func(t *testing.T) {
		a := &Appointment{Status: AppointmentStatusScheduled}

		require.NoError(t, a.RequestCancellation("  out of town  "))
		assert.Equal(t, AppointmentStatusCancellationRequested, a.Status)
		require.NotNil(t, a.CancellationReason)
		assert.Equal(t, "out of town", *a.CancellationReason)
	})

	t.Run("blank reason rejected", func(t *testing.T) {
		a := &Appointment{Status: AppointmentStatusScheduled}

		assert.ErrorIs(t, a.RequestCancellation("   "), ErrCancellationReasonRequired)
		assert.Equal(t, AppointmentStatusScheduled, a.Status)
		assert.Nil(t, a.CancellationReason)
	})

	t.Run("only from scheduled", func(t *testing.T) {
		a := &Appointment{Status: AppointmentStatusCancelled}

		assert.ErrorIs(t, a.RequestCancellation("reason"), ErrInvalidStatusTransition)
		assert.Equal(t, AppointmentStatusCancelled, a.Status)
	})
}

func TestAppointment_ApproveAndDeny(t *testing.T) {
	reason := "sick"

	approved := &Appointment{Status: AppointmentStatusCancellationRequested, CancellationReason: &reason}
	require.NoError(t, approved.ApproveCancellation())
	assert.Equal(t, AppointmentStatusCancelled, approved.Status)
	assert.Equal(t, &reason, approved.CancellationReason)

	denied := &Appointment{Status: AppointmentStatusCancellationRequested, CancellationReason: &reason}
	require.NoError(t, denied.DenyCancellation())
	assert.Equal(t, AppointmentStatusScheduled, denied.Status)
	assert.Nil(t, denied.CancellationReason)

	scheduled := &Appointment{Status: AppointmentStatusScheduled}
	assert.ErrorIs(t, scheduled.ApproveCancellation(), ErrInvalidStatusTransition)
	assert.ErrorIs(t, scheduled.DenyCancellation(), ErrInvalidStatusTransition)

	assert.ErrorIs(t, approved.DenyCancellation(), ErrInvalidStatusTransition)
	assert.ErrorIs(t, approved.ApproveCancellation(), ErrInvalidStatusTransition)
}
