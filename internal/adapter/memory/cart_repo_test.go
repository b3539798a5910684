package memory

import (
	"context"
	"testing"

	"github.com/guitarshop/cart-service/internal/domain/entity"
	"github.com/guitarshop/cart-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState() entity.CartState {
	coupon := "light-333"
	return entity.CartState{
		Items: map[int]entity.LineItem{
			1: {Product: entity.Guitar{ID: 1, Name: "CURT Z30 Plus", Price: 100}, Quantity: 2, TotalPrice: 200},
			2: {Product: entity.Guitar{ID: 2, Name: "Honner Amadeo", Price: 50}, Quantity: 1, TotalPrice: 50},
		},
		Coupon:                     &coupon,
		DiscountPercent:            10,
		Discount:                   25,
		TotalCartPrice:             250,
		TotalCartPriceWithDiscount: 225,
		ItemsQuantity:              3,
	}
}

func TestCartSnapshotRepository_RoundTrip(t *testing.T) {
	repo := NewCartSnapshotRepository()
	ctx := context.Background()

	original := sampleState()
	require.NoError(t, repo.Save(ctx, original, 0))

	restored, err := repo.Load(ctx)

	require.NoError(t, err)
	assert.Equal(t, original, *restored, "restored snapshot must be deep-equal to the saved one")
}

func TestCartSnapshotRepository_LoadWithoutSnapshot(t *testing.T) {
	repo := NewCartSnapshotRepository()

	_, err := repo.Load(context.Background())

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCartSnapshotRepository_SavedSnapshotIsIsolated(t *testing.T) {
	repo := NewCartSnapshotRepository()
	ctx := context.Background()

	state := sampleState()
	require.NoError(t, repo.Save(ctx, state, 0))

	// Mutating either side after the save must not leak into the other.
	state.Items[3] = entity.LineItem{Product: entity.Guitar{ID: 3, Price: 10}, Quantity: 1, TotalPrice: 10}
	restored, err := repo.Load(ctx)
	require.NoError(t, err)
	restored.Items[4] = entity.LineItem{Product: entity.Guitar{ID: 4, Price: 20}, Quantity: 1, TotalPrice: 20}

	fresh, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, fresh.Items, 2)
}

func TestCartSnapshotRepository_Delete(t *testing.T) {
	repo := NewCartSnapshotRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleState(), 0))
	require.NoError(t, repo.Delete(ctx))

	_, err := repo.Load(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
