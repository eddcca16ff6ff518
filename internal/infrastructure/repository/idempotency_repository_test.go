package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wekesa/daktari-api/internal/domain/entity"
	"github.com/wekesa/daktari-api/internal/infrastructure/database"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func TestIdempotencyKeyRoundTrip(t *testing.T) {
	repo := NewIdempotencyRepository(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	key := &entity.IdempotencyKey{
		Key:          "settle-20260830-001",
		UserID:       userID,
		Endpoint:     "POST /billing/settle",
		ResponseCode: 201,
		ResponseBody: `{"ok":true}`,
		ExpiresAt:    time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, repo.Create(ctx, key))
	assert.NotEqual(t, uuid.Nil, key.ID)

	found, err := repo.GetByKey(ctx, "settle-20260830-001", userID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, key.ID, found.ID)
	assert.Equal(t, 201, found.ResponseCode)
	assert.False(t, found.IsExpired())

	missing, err := repo.GetByKey(ctx, "settle-20260830-001", uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestIdempotencyDeleteExpired(t *testing.T) {
	db := newTestDB(t)
	repo := NewIdempotencyRepository(db)
	ctx := context.Background()

	expired := &entity.IdempotencyKey{
		Key:       "old",
		UserID:    uuid.New(),
		Endpoint:  "POST /billing/settle",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	live := &entity.IdempotencyKey{
		Key:       "fresh",
		UserID:    uuid.New(),
		Endpoint:  "POST /billing/settle",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.Create(ctx, expired))
	require.NoError(t, repo.Create(ctx, live))

	require.NoError(t, repo.DeleteExpired(ctx))

	var count int64
	require.NoError(t, db.Model(&entity.IdempotencyKey{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
