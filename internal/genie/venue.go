package genie

import (
	"context"
	"fmt"
	"math"
	"sort"

	"example.com/wedding-marketplace/backend/internal/area"
	"example.com/wedding-marketplace/backend/internal/models"
)

type VenueExtractor struct {
	store ListingStore
	areas *area.Resolver
	cfg   Config
}

// NewVenueExtractor создает поиск площадок-кандидатов.
func NewVenueExtractor(store ListingStore, areas *area.Resolver, cfg Config) *VenueExtractor {
	return &VenueExtractor{store: store, areas: areas, cfg: cfg}
}

// Extract возвращает площадки, отсортированные по близости доли бюджета к идеальной.
func (v *VenueExtractor) Extract(ctx context.Context, areaID string, guestCount int, totalBudget int64) ([]VenueCandidate, error) {
	if guestCount <= 0 {
		return nil, fmt.Errorf("%w: guest_count must be greater than 0", ErrInvalidInput)
	}
	if totalBudget <= 0 {
		return nil, fmt.Errorf("%w: total_budget must be greater than 0", ErrInvalidInput)
	}

	profiles, err := v.store.FindApprovedVenueProfiles(ctx, v.areas.MatchTags(areaID), guestCount)
	if err != nil {
		return nil, storeError("find venue profiles", err)
	}

	if len(profiles) == 0 {
		return nil, &NoVenueFoundError{Area: areaID, GuestCount: guestCount}
	}

	candidates := make([]VenueCandidate, 0, len(profiles))
	for _, profile := range profiles {
		price := v.estimatePrice(profile, guestCount)
		ratio := float64(price) / float64(totalBudget)
		candidates = append(candidates, VenueCandidate{
			VendorID:       profile.VendorID,
			ProfileID:      profile.ID,
			Name:           profile.DisplayName,
			EstimatedPrice: price,
			Ratio:          ratio,
			Score:          math.Abs(ratio - v.cfg.Venue.IdealCenterRatio),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score < candidates[j].Score
	})

	if len(candidates) > v.cfg.Venue.CandidateLimit {
		candidates = candidates[:v.cfg.Venue.CandidateLimit]
	}

	return candidates, nil
}

func (v *VenueExtractor) estimatePrice(p models.VendorProfile, guestCount int) int64 {
	if price, ok := listedPrice(p); ok {
		return price
	}
	return v.cfg.Venue.DefaultPricePerGuest * int64(guestCount)
}

// InIdealWindow сообщает, попадает ли доля площадки в рекомендуемое окно.
func (v *VenueExtractor) InIdealWindow(c VenueCandidate) bool {
	return c.Ratio >= v.cfg.Venue.IdealMinRatio && c.Ratio <= v.cfg.Venue.IdealMaxRatio
}
