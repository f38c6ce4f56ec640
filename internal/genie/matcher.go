package genie

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"example.com/wedding-marketplace/backend/internal/area"
	"example.com/wedding-marketplace/backend/internal/models"
)

type Matcher struct {
	store ListingStore
	areas *area.Resolver
	cfg   Config
}

type CandidateQuery struct {
	Category   models.Category
	Area       string
	Target     int64
	GuestCount int
}

// NewMatcher создает поиск кандидатов-поставщиков по категориям.
func NewMatcher(store ListingStore, areas *area.Resolver, cfg Config) *Matcher {
	return &Matcher{store: store, areas: areas, cfg: cfg}
}

func (m *Matcher) strictWindow(target int64) PriceWindow {
	return PriceWindow{Floor: target, Ceiling: target}
}

func (m *Matcher) relaxedWindow(target int64) PriceWindow {
	return PriceWindow{
		Floor:   scale(target, 1-m.cfg.RelaxedPriceFactor),
		Ceiling: scale(target, 1+m.cfg.RelaxedPriceFactor),
	}
}

// Match ищет кандидатов одной категории, ослабляя фильтры по ступеням.
func (m *Matcher) Match(ctx context.Context, q CandidateQuery) ([]VendorCandidate, error) {
	tags := m.areas.MatchTags(q.Area)

	strict := m.strictWindow(q.Target)
	profiles, err := m.store.FindApprovedProfilesByCategory(ctx, q.Category.ID, ProfileFilter{AreaTags: tags, Price: &strict})
	if err != nil {
		return nil, storeError("find strict candidates", err)
	}
	if len(profiles) > 0 {
		return m.rank(profiles, q, false), nil
	}

	relaxed := m.relaxedWindow(q.Target)
	profiles, err = m.store.FindApprovedProfilesByCategory(ctx, q.Category.ID, ProfileFilter{AreaTags: tags, Price: &relaxed})
	if err != nil {
		return nil, storeError("find relaxed candidates", err)
	}
	if len(profiles) > 0 {
		return m.rank(profiles, q, false), nil
	}

	profiles, err = m.store.FindApprovedProfilesByCategory(ctx, q.Category.ID, ProfileFilter{OrderByPriceMin: true, Limit: m.cfg.CandidateLimit})
	if err != nil {
		return nil, storeError("find fallback candidates", err)
	}
	return m.rank(profiles, q, true), nil
}

// MatchAll загружает профили всех категорий одним запросом и ранжирует их по каждой категории.
func (m *Matcher) MatchAll(ctx context.Context, areaID string, guestCount int, categories []models.Category, targets map[uuid.UUID]int64) (CandidateMap, error) {
	ids := make([]uuid.UUID, 0, len(categories))
	for _, category := range categories {
		ids = append(ids, category.ID)
	}

	result := make(CandidateMap, len(categories))
	if len(ids) == 0 {
		return result, nil
	}

	profiles, err := m.store.FindApprovedProfilesByCategories(ctx, ids)
	if err != nil {
		return nil, storeError("find candidates by categories", err)
	}

	for _, category := range categories {
		q := CandidateQuery{Category: category, Area: areaID, Target: targets[category.ID], GuestCount: guestCount}
		result[category.ID] = m.matchInMemory(profiles, q)
	}

	return result, nil
}

func (m *Matcher) matchInMemory(profiles []models.VendorProfile, q CandidateQuery) []VendorCandidate {
	pool := make([]models.VendorProfile, 0)
	for _, p := range profiles {
		if p.HasCategory(q.Category.ID) {
			pool = append(pool, p)
		}
	}

	inArea := make([]models.VendorProfile, 0, len(pool))
	for _, p := range pool {
		if m.areas.ProfileMatches(p.AreaTags, q.Area) {
			inArea = append(inArea, p)
		}
	}

	for _, window := range []PriceWindow{m.strictWindow(q.Target), m.relaxedWindow(q.Target)} {
		tier := make([]models.VendorProfile, 0, len(inArea))
		for _, p := range inArea {
			if window.Admits(p) {
				tier = append(tier, p)
			}
		}
		if len(tier) > 0 {
			return m.rank(tier, q, false)
		}
	}

	fallback := make([]models.VendorProfile, len(pool))
	copy(fallback, pool)
	sortByPriceMin(fallback)
	if len(fallback) > m.cfg.CandidateLimit {
		fallback = fallback[:m.cfg.CandidateLimit]
	}
	return m.rank(fallback, q, true)
}

func (m *Matcher) rank(profiles []models.VendorProfile, q CandidateQuery, fallback bool) []VendorCandidate {
	perGuest := q.Category.PerGuest()

	candidates := make([]VendorCandidate, 0, len(profiles))
	for _, p := range profiles {
		candidates = append(candidates, VendorCandidate{
			VendorID:    p.VendorID,
			ProfileID:   p.ID,
			Name:        p.DisplayName,
			PriceMin:    p.PriceMin,
			PriceMax:    p.PriceMax,
			ActualPrice: actualPrice(p, perGuest, q.GuestCount),
			Plans:       p.Plans,
			IsFallback:  fallback,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return distance(candidates[i].ActualPrice, q.Target) < distance(candidates[j].ActualPrice, q.Target)
	})

	out := make([]VendorCandidate, 0, len(candidates))
	seen := make(map[uuid.UUID]struct{}, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c.ProfileID]; ok {
			continue
		}
		seen[c.ProfileID] = struct{}{}
		out = append(out, c)
		if len(out) == m.cfg.CandidateLimit {
			break
		}
	}

	return out
}

// sortByPriceMin orders ascending by price_min with unpriced profiles last.
func sortByPriceMin(profiles []models.VendorProfile) {
	sort.SliceStable(profiles, func(i, j int) bool {
		a, b := profiles[i].PriceMin, profiles[j].PriceMin
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a < *b
	})
}
