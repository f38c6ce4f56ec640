package genie

import (
	"math"

	"example.com/wedding-marketplace/backend/internal/models"
)

func scale(value int64, factor float64) int64 {
	return int64(math.Round(float64(value) * factor))
}

// listedPrice derives a single price from plans, then the price range, then either bound.
func listedPrice(p models.VendorProfile) (int64, bool) {
	if price, ok := p.CheapestPlanPrice(); ok {
		return price, true
	}

	switch {
	case p.PriceMin != nil && p.PriceMax != nil:
		return (*p.PriceMin + *p.PriceMax) / 2, true
	case p.PriceMin != nil:
		return *p.PriceMin, true
	case p.PriceMax != nil:
		return *p.PriceMax, true
	}

	return 0, false
}

func actualPrice(p models.VendorProfile, perGuest bool, guestCount int) *int64 {
	price, ok := listedPrice(p)
	if !ok {
		return nil
	}
	if perGuest {
		price *= int64(guestCount)
	}
	return &price
}

// distance returns |price - target|; a missing price sorts after every priced candidate.
func distance(price *int64, target int64) int64 {
	if price == nil {
		return math.MaxInt64
	}
	d := *price - target
	if d < 0 {
		return -d
	}
	return d
}

func rangeAround(price int64) BudgetRange {
	return BudgetRange{Min: scale(price, 0.9), Mid: price, Max: scale(price, 1.1)}
}

func ordered(r BudgetRange) BudgetRange {
	if r.Mid < r.Min {
		r.Mid = r.Min
	}
	if r.Max < r.Mid {
		r.Max = r.Mid
	}
	return r
}
