package domain

import (
	"time"

	"github.com/google/uuid"
)

// recentWindow is the trailing period counted as "recent" in seller stats.
const recentWindow = 7 * 24 * time.Hour

// ProductSnapshot is the minimal per-product projection fetched for
// seller statistics.
type ProductSnapshot struct {
	ID            uuid.UUID `json:"id"`
	IsActive      bool      `json:"is_active"`
	StockQuantity int       `json:"stock_quantity"`
	Price         float64   `json:"price"`
	CreatedAt     time.Time `json:"created_at"`
}

// SellerStats holds the aggregates computed over a seller's full product
// set in a single pass.
type SellerStats struct {
	TotalProducts       int     `json:"total_products"`
	ActiveProducts      int     `json:"active_products"`
	InactiveProducts    int     `json:"inactive_products"`
	OutOfStock          int     `json:"out_of_stock"`
	TotalInventoryValue float64 `json:"total_inventory_value"`
	RecentProducts      int     `json:"recent_products"`
}

// ComputeSellerStats aggregates the seller's products. "Recent" counts
// products created strictly after now minus seven days.
func ComputeSellerStats(products []ProductSnapshot, now time.Time) SellerStats {
	stats := SellerStats{TotalProducts: len(products)}
	cutoff := now.Add(-recentWindow)

	for _, p := range products {
		if p.IsActive {
			stats.ActiveProducts++
		}
		if p.StockQuantity == 0 {
			stats.OutOfStock++
		}
		stats.TotalInventoryValue += p.Price * float64(p.StockQuantity)
		if p.CreatedAt.After(cutoff) {
			stats.RecentProducts++
		}
	}

	stats.InactiveProducts = stats.TotalProducts - stats.ActiveProducts
	return stats
}
