package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodhub/cart-svc/internal/storage"
)

func TestSeedOffers(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := storage.NewRepository(storage.NewMemoryStore())

	seeded, err := storage.SeedOffers(ctx, repo, now)
	require.NoError(t, err)
	assert.Equal(t, 4, seeded)

	again, err := storage.SeedOffers(ctx, repo, now)
	require.NoError(t, err)
	assert.Zero(t, again)

	offer, err := repo.FindOfferByCode(ctx, "FOODHUB50")
	require.NoError(t, err)
	require.NotNil(t, offer)
	assert.True(t, offer.LiveAt(now.Add(24*time.Hour)))
	assert.False(t, offer.LiveAt(now.AddDate(1, 0, 1)))
	assert.Equal(t, "150", offer.MaxDiscount.String())
}
