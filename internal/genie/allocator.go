package genie

import (
	"context"
	"log/slog"

	"example.com/wedding-marketplace/backend/internal/models"
)

type Allocator struct {
	cfg     Config
	matcher *Matcher
	logger  *slog.Logger
}

type AllocationRequest struct {
	Input      Input
	VenuePrice int64
	Mode       PlanMode
	Categories []models.Category
	Source     CandidateSource
}

type AllocationResult struct {
	Allocations []CategoryAllocation
	// Candidates is nil when the request omitted candidate lookups.
	Candidates CandidateMap
}

// NewAllocator создает распределитель бюджета по категориям.
func NewAllocator(cfg Config, matcher *Matcher, logger *slog.Logger) *Allocator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Allocator{cfg: cfg, matcher: matcher, logger: logger}
}

// Allocate распределяет оставшийся после площадки бюджет по категориям.
func (a *Allocator) Allocate(ctx context.Context, req AllocationRequest) (AllocationResult, error) {
	remaining := req.Input.TotalBudget - req.VenuePrice

	var fetched CandidateMap
	if req.Source.mode == candidatesFetch {
		fetched = make(CandidateMap)
	}

	allocations := make([]CategoryAllocation, 0, len(req.Categories))
	for _, category := range req.Categories {
		if category.IsVenue() || req.Input.excludes(category.Name) {
			continue
		}

		base, ok := a.baseRange(category)
		if !ok {
			a.logger.DebugContext(ctx, "genie category without budget range", slog.String("category", category.Name))
			continue
		}

		var r BudgetRange
		if category.PerGuest() {
			guests := int64(req.Input.GuestCount)
			r = BudgetRange{Min: base.Min * guests, Mid: base.Mid * guests, Max: base.Max * guests}
		} else {
			r = adjustForMode(base, req.Mode, req.Input.prioritizes(category.Name))
		}

		var candidates []VendorCandidate
		switch req.Source.mode {
		case candidatesFetch:
			found, err := a.matcher.Match(ctx, CandidateQuery{
				Category:   category,
				Area:       req.Input.Area,
				Target:     r.Mid,
				GuestCount: req.Input.GuestCount,
			})
			if err != nil {
				return AllocationResult{}, err
			}
			fetched[category.ID] = found
			candidates = found
		case candidatesProvided:
			candidates = req.Source.provided[category.ID]
		}

		if len(candidates) > 0 && candidates[0].ActualPrice != nil {
			r = rangeAround(*candidates[0].ActualPrice)
		}

		allocations = append(allocations, CategoryAllocation{
			CategoryID:   category.ID,
			CategoryName: category.Name,
			AllocatedMin: r.Min,
			AllocatedMid: r.Mid,
			AllocatedMax: r.Max,
		})
	}

	a.fitToBudget(allocations, remaining, req.Input)

	result := AllocationResult{Allocations: allocations}
	switch req.Source.mode {
	case candidatesFetch:
		result.Candidates = fetched
	case candidatesProvided:
		result.Candidates = req.Source.provided
	}

	return result, nil
}

func (a *Allocator) baseRange(category models.Category) (BudgetRange, bool) {
	var (
		r  BudgetRange
		ok bool
	)
	switch category.Role {
	case models.CategoryRolePlanner:
		r, ok = a.cfg.PlannerCosts[models.PlannerTypePlanner]
	case models.CategoryRoleDayOfPlanner:
		r, ok = a.cfg.PlannerCosts[models.PlannerTypeDayOf]
	default:
		r, ok = a.cfg.CategoryRanges[category.Name]
	}
	return r, ok
}

func adjustForMode(r BudgetRange, mode PlanMode, priority bool) BudgetRange {
	switch mode {
	case PlanModePriority:
		if priority {
			return ordered(BudgetRange{Min: scale(r.Max, 0.8), Mid: scale(r.Max, 0.9), Max: r.Max})
		}
		return ordered(BudgetRange{Min: r.Min, Mid: scale(r.Mid, 0.8), Max: r.Mid})
	case PlanModeBudget:
		if priority {
			return ordered(BudgetRange{Min: scale(r.Mid, 0.7), Mid: r.Mid, Max: scale(r.Mid, 1.2)})
		}
		return ordered(BudgetRange{Min: r.Min, Mid: r.Min, Max: scale(r.Min, 1.2)})
	}
	return r
}

// fitToBudget collapses non-priority allocations to their minimum, in order,
// until the sum of mids fits the remaining budget. Priority categories are kept.
func (a *Allocator) fitToBudget(allocations []CategoryAllocation, remaining int64, in Input) {
	var total int64
	for _, alloc := range allocations {
		total += alloc.AllocatedMid
	}

	for i := range allocations {
		if total <= remaining {
			return
		}
		if in.prioritizes(allocations[i].CategoryName) {
			continue
		}

		collapsed := collapseToMin(allocations[i])
		total -= allocations[i].AllocatedMid - collapsed.AllocatedMid
		allocations[i] = collapsed
	}
}

func collapseToMin(alloc CategoryAllocation) CategoryAllocation {
	upper := scale(alloc.AllocatedMin, 1.2)
	if upper > alloc.AllocatedMax {
		upper = alloc.AllocatedMax
	}
	alloc.AllocatedMid = alloc.AllocatedMin
	alloc.AllocatedMax = upper
	return alloc
}
