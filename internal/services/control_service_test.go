package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetPasswordControl(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	_, err := env.controls.CreateResetPassword(ctx, "nope")
	assert.ErrorIs(t, err, ErrValidation)

	first, err := env.controls.CreateResetPassword(ctx, "A@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, first.RequestID)
	assert.Equal(t, "a@example.com", first.Email)
	assert.False(t, first.Date.IsZero())

	_, err = env.controls.CreateResetPassword(ctx, "b@example.com")
	require.NoError(t, err)

	got, err := env.controls.GetResetPassword(ctx, first.RequestID)
	require.NoError(t, err)
	assert.Equal(t, first.Email, got.Email)

	_, err = env.controls.GetResetPassword(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrRecordNotFound)

	records, total, err := env.controls.ListResetPassword(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, records, 1)
}

func TestEmailConfirmationControl(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	record, err := env.controls.CreateEmailConfirmation(ctx, "c@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, record.ID)

	got, err := env.controls.GetEmailConfirmation(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, "c@example.com", got.Email)

	records, total, err := env.controls.ListEmailConfirmation(ctx, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, records, 1)
	assert.Equal(t, record.ID, records[0].ID)
}
