package genie

import (
	"context"

	"github.com/google/uuid"

	"example.com/wedding-marketplace/backend/internal/models"
)

// ListingStore is the read-only view of vendor listings the engine depends on.
// Every method returns approved profiles only.
type ListingStore interface {
	FindApprovedVenueProfiles(ctx context.Context, areaTags []string, minCapacity int) ([]models.VendorProfile, error)
	FindApprovedProfilesByCategory(ctx context.Context, categoryID uuid.UUID, filter ProfileFilter) ([]models.VendorProfile, error)
	FindApprovedProfilesByCategories(ctx context.Context, categoryIDs []uuid.UUID) ([]models.VendorProfile, error)
	ListCategories(ctx context.Context, excluding []string) ([]models.Category, error)
}

// PriceWindow admits a profile when price_min <= Ceiling, price_max >= Floor,
// or neither bound is set.
type PriceWindow struct {
	Floor   int64
	Ceiling int64
}

// Admits сообщает, попадает ли профиль в ценовое окно.
func (w PriceWindow) Admits(p models.VendorProfile) bool {
	if p.PriceMin == nil && p.PriceMax == nil {
		return true
	}
	if p.PriceMin != nil && *p.PriceMin <= w.Ceiling {
		return true
	}
	if p.PriceMax != nil && *p.PriceMax >= w.Floor {
		return true
	}
	return false
}

type ProfileFilter struct {
	// AreaTags narrows to profiles sharing at least one tag; nil disables the area filter.
	AreaTags        []string
	Price           *PriceWindow
	OrderByPriceMin bool
	Limit           int
}
