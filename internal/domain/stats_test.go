package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeSellerStats(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("empty product set", func(t *testing.T) {
		t.Parallel()

		stats := ComputeSellerStats(nil, now)
		assert.Equal(t, SellerStats{}, stats)
	})

	t.Run("aggregates over mixed products", func(t *testing.T) {
		t.Parallel()

		products := []ProductSnapshot{
			{IsActive: true, StockQuantity: 10, Price: 5.50, CreatedAt: now.Add(-time.Hour)},
			{IsActive: true, StockQuantity: 0, Price: 100, CreatedAt: now.Add(-30 * 24 * time.Hour)},
			{IsActive: false, StockQuantity: 3, Price: 2, CreatedAt: now.Add(-2 * 24 * time.Hour)},
		}

		stats := ComputeSellerStats(products, now)

		assert.Equal(t, 3, stats.TotalProducts)
		assert.Equal(t, 2, stats.ActiveProducts)
		assert.Equal(t, 1, stats.InactiveProducts)
		assert.Equal(t, 1, stats.OutOfStock)
		assert.InDelta(t, 61.0, stats.TotalInventoryValue, 0.0001)
		assert.Equal(t, 2, stats.RecentProducts)
	})

	t.Run("recent window boundary is exclusive", func(t *testing.T) {
		t.Parallel()

		cutoff := now.Add(-7 * 24 * time.Hour)
		products := []ProductSnapshot{
			{CreatedAt: cutoff},                      // exactly on the boundary
			{CreatedAt: cutoff.Add(time.Nanosecond)}, // just inside
			{CreatedAt: cutoff.Add(-time.Nanosecond)},
		}

		stats := ComputeSellerStats(products, now)
		assert.Equal(t, 1, stats.RecentProducts)
	})

	t.Run("inventory value ignores inactive flag", func(t *testing.T) {
		t.Parallel()

		products := []ProductSnapshot{
			{IsActive: false, StockQuantity: 4, Price: 25},
		}

		stats := ComputeSellerStats(products, now)
		assert.InDelta(t, 100.0, stats.TotalInventoryValue, 0.0001)
	})
}
