package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checklist-assessment-service/internal/domain"
)

func TestAttemptStoreSurfacesRedisErrors(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewAttemptStore(client, time.Minute)

	mock.ExpectGet("attempt:a1").SetErr(errors.New("connection reset"))
	_, err := store.Get(context.Background(), "a1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrAttemptNotFound)
	assert.Contains(t, err.Error(), "connection reset")

	mock.ExpectGet("attempt:a2").SetVal("{broken")
	_, err = store.Get(context.Background(), "a2")
	assert.ErrorContains(t, err, "decode attempt")

	assert.NoError(t, mock.ExpectationsWereMet())
}
