package genie

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"example.com/wedding-marketplace/backend/internal/area"
	"example.com/wedding-marketplace/backend/internal/models"
)

type Planner struct {
	store     ListingStore
	cfg       Config
	venues    *VenueExtractor
	matcher   *Matcher
	allocator *Allocator
	logger    *slog.Logger
}

// NewPlanner собирает генератор стартового свадебного плана.
func NewPlanner(store ListingStore, areas *area.Resolver, cfg Config, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.Default()
	}

	matcher := NewMatcher(store, areas, cfg)
	return &Planner{
		store:     store,
		cfg:       cfg,
		venues:    NewVenueExtractor(store, areas, cfg),
		matcher:   matcher,
		allocator: NewAllocator(cfg, matcher, logger),
		logger:    logger,
	}
}

// Generate строит план: площадку, распределение бюджета и кандидатов по категориям.
// Возвращается список из одного плана для совместимости с клиентами, ожидающими варианты.
func (p *Planner) Generate(ctx context.Context, in Input) ([]PlanResult, error) {
	if err := in.Validate(p.cfg.MaxPriorityCount); err != nil {
		return nil, err
	}

	var (
		venues     []VenueCandidate
		categories []models.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := p.venues.Extract(gctx, in.Area, in.GuestCount, in.TotalBudget)
		if err != nil {
			return err
		}
		venues = found
		return nil
	})
	g.Go(func() error {
		found, err := p.store.ListCategories(gctx, nil)
		if err != nil {
			return storeError("list categories", err)
		}
		categories = found
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	selected := venues[0]
	alternatives := venues[1:]
	if len(alternatives) > p.cfg.Venue.AlternateCount {
		alternatives = alternatives[:p.cfg.Venue.AlternateCount]
	}
	venuePrice := selected.EstimatedPrice

	var venueCategory *models.Category
	others := make([]models.Category, 0, len(categories))
	for i := range categories {
		if categories[i].IsVenue() {
			venueCategory = &categories[i]
			continue
		}
		others = append(others, categories[i])
	}

	shares, err := p.allocator.Allocate(ctx, AllocationRequest{
		Input:      in,
		VenuePrice: venuePrice,
		Mode:       PlanModeBalanced,
		Categories: others,
		Source:     OmitCandidates(),
	})
	if err != nil {
		return nil, err
	}

	targets := make(map[uuid.UUID]int64, len(shares.Allocations))
	allocated := make([]models.Category, 0, len(shares.Allocations))
	byID := make(map[uuid.UUID]models.Category, len(others))
	for _, c := range others {
		byID[c.ID] = c
	}
	for _, alloc := range shares.Allocations {
		targets[alloc.CategoryID] = alloc.AllocatedMid
		allocated = append(allocated, byID[alloc.CategoryID])
	}

	candidates, err := p.matcher.MatchAll(ctx, in.Area, in.GuestCount, allocated, targets)
	if err != nil {
		return nil, err
	}

	final, err := p.allocator.Allocate(ctx, AllocationRequest{
		Input:      in,
		VenuePrice: venuePrice,
		Mode:       PlanModeBalanced,
		Categories: allocated,
		Source:     ProvidedCandidates(candidates),
	})
	if err != nil {
		return nil, err
	}

	venueRange := rangeAround(venuePrice)
	totals := Totals{TotalMin: venueRange.Min, TotalMid: venueRange.Mid, TotalMax: venueRange.Max}
	for _, alloc := range final.Allocations {
		totals.TotalMin += alloc.AllocatedMin
		totals.TotalMid += alloc.AllocatedMid
		totals.TotalMax += alloc.AllocatedMax
	}

	display := make(CandidateMap, len(final.Allocations)+1)
	fallbackCategories := 0
	for _, alloc := range final.Allocations {
		ranked := final.Candidates[alloc.CategoryID]
		if len(ranked) > 0 && ranked[0].IsFallback {
			fallbackCategories++
		}
		display[alloc.CategoryID] = p.trim(ranked)
	}
	if venueCategory != nil {
		display[venueCategory.ID] = p.venueAsCandidates(venues)
	}

	plan := PlanResult{
		PlanType: PlanModeBalanced,
		Venue: VenueSelection{
			Selected:     selected,
			Alternatives: alternatives,
			PriceMin:     venueRange.Min,
			PriceMid:     venueRange.Mid,
			PriceMax:     venueRange.Max,
		},
		PlannerType:              in.PlannerType,
		PlannerCost:              p.cfg.PlannerCosts[in.PlannerType],
		CategoryAllocations:      final.Allocations,
		CategoryVendorCandidates: display,
		Totals:                   totals,
	}

	p.logger.InfoContext(ctx, "genie plan generated",
		slog.String("area", in.Area),
		slog.Int("guest_count", in.GuestCount),
		slog.Int64("total_budget", in.TotalBudget),
		slog.String("venue_profile_id", selected.ProfileID.String()),
		slog.Bool("venue_in_ideal_window", p.venues.InIdealWindow(selected)),
		slog.Int64("total_mid", totals.TotalMid),
		slog.Int("categories", len(final.Allocations)),
		slog.Int("fallback_categories", fallbackCategories),
	)

	return []PlanResult{plan}, nil
}

func (p *Planner) trim(ranked []VendorCandidate) []VendorCandidate {
	n := len(ranked)
	if n > p.cfg.DisplayCount {
		n = p.cfg.DisplayCount
	}
	out := make([]VendorCandidate, n)
	copy(out, ranked[:n])
	return out
}

func (p *Planner) venueAsCandidates(venues []VenueCandidate) []VendorCandidate {
	n := len(venues)
	if n > p.cfg.DisplayCount {
		n = p.cfg.DisplayCount
	}

	out := make([]VendorCandidate, 0, n)
	for _, v := range venues[:n] {
		r := rangeAround(v.EstimatedPrice)
		price := v.EstimatedPrice
		out = append(out, VendorCandidate{
			VendorID:    v.VendorID,
			ProfileID:   v.ProfileID,
			Name:        v.Name,
			PriceMin:    &r.Min,
			PriceMax:    &r.Max,
			ActualPrice: &price,
		})
	}
	return out
}
