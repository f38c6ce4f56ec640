package genie

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"example.com/wedding-marketplace/backend/internal/models"
)

func allocatorConfig() Config {
	cfg := DefaultConfig()
	cfg.CategoryRanges = map[string]BudgetRange{
		CategoryPhoto:      {Min: 100_000, Mid: 200_000, Max: 300_000},
		CategoryDress:      {Min: 100_000, Mid: 200_000, Max: 300_000},
		CategoryFlowers:    {Min: 50_000, Mid: 100_000, Max: 150_000},
		CategoryCake:       {Min: 30_000, Mid: 50_000, Max: 80_000},
		CategoryGiftFavors: {Min: 2_000, Mid: 3_000, Max: 4_000},
	}
	cfg.PlannerCosts = map[models.PlannerType]BudgetRange{
		models.PlannerTypePlanner: {Min: 300_000, Mid: 400_000, Max: 500_000},
		models.PlannerTypeDayOf:   {Min: 80_000, Mid: 100_000, Max: 150_000},
		models.PlannerTypeSelf:    {},
	}
	return cfg
}

func baseInput() Input {
	return Input{Area: "chiba", GuestCount: 40, TotalBudget: 10_000_000, PlannerType: models.PlannerTypeSelf}
}

func allocationsByName(allocs []CategoryAllocation) map[string]CategoryAllocation {
	out := make(map[string]CategoryAllocation, len(allocs))
	for _, a := range allocs {
		out[a.CategoryName] = a
	}
	return out
}

func newTestAllocator(store ListingStore, cfg Config) *Allocator {
	return NewAllocator(cfg, NewMatcher(store, testResolver(), cfg), nil)
}

// TestAllocateBalancedUsesStaticRanges проверяет базовые диапазоны, учет гостей и роли планировщика.
func TestAllocateBalancedUsesStaticRanges(t *testing.T) {
	categories := defaultCategories()
	allocator := newTestAllocator(newMemoryStore(categories), allocatorConfig())

	result, err := allocator.Allocate(context.Background(), AllocationRequest{
		Input:      baseInput(),
		VenuePrice: 2_000_000,
		Mode:       PlanModeBalanced,
		Categories: categories,
		Source:     OmitCandidates(),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.Candidates != nil {
		t.Fatalf("expected no candidates when lookups are omitted, got %v", result.Candidates)
	}

	got := allocationsByName(result.Allocations)
	if _, ok := got[CategoryVenue]; ok {
		t.Fatal("expected venue to be left out of category allocations")
	}

	if photo := got[CategoryPhoto]; photo.AllocatedMin != 100_000 || photo.AllocatedMid != 200_000 || photo.AllocatedMax != 300_000 {
		t.Fatalf("unexpected photo allocation: %+v", photo)
	}

	gifts := got[CategoryGiftFavors]
	if gifts.AllocatedMin != 80_000 || gifts.AllocatedMid != 120_000 || gifts.AllocatedMax != 160_000 {
		t.Fatalf("expected per-guest scaling by 40 guests, got %+v", gifts)
	}

	planner := got[CategoryPlanner]
	if planner.AllocatedMin != 300_000 || planner.AllocatedMid != 400_000 || planner.AllocatedMax != 500_000 {
		t.Fatalf("expected planner cost table range, got %+v", planner)
	}
}

// TestAllocateExcludesCategories проверяет исключение категорий по имени.
func TestAllocateExcludesCategories(t *testing.T) {
	categories := defaultCategories()
	allocator := newTestAllocator(newMemoryStore(categories), allocatorConfig())

	in := baseInput()
	in.ExcludedCategories = []string{CategoryCake}

	result, err := allocator.Allocate(context.Background(), AllocationRequest{Input: in, VenuePrice: 1_000_000, Mode: PlanModeBalanced, Categories: categories})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, ok := allocationsByName(result.Allocations)[CategoryCake]; ok {
		t.Fatal("expected excluded category to be absent")
	}
}

// TestAdjustForMode проверяет смещение диапазонов в режимах priority и budget.
func TestAdjustForMode(t *testing.T) {
	r := BudgetRange{Min: 100_000, Mid: 200_000, Max: 300_000}

	cases := []struct {
		name     string
		mode     PlanMode
		priority bool
		want     BudgetRange
	}{
		{name: "balanced", mode: PlanModeBalanced, priority: true, want: r},
		{name: "priority favored", mode: PlanModePriority, priority: true, want: BudgetRange{Min: 240_000, Mid: 270_000, Max: 300_000}},
		{name: "priority other", mode: PlanModePriority, priority: false, want: BudgetRange{Min: 100_000, Mid: 160_000, Max: 200_000}},
		{name: "budget favored", mode: PlanModeBudget, priority: true, want: BudgetRange{Min: 140_000, Mid: 200_000, Max: 240_000}},
		{name: "budget other", mode: PlanModeBudget, priority: false, want: BudgetRange{Min: 100_000, Mid: 100_000, Max: 120_000}},
	}

	for _, tc := range cases {
		if got := adjustForMode(r, tc.mode, tc.priority); got != tc.want {
			t.Fatalf("%s: expected %+v, got %+v", tc.name, tc.want, got)
		}
	}
}

// TestAllocateProvidedCandidatesOverrideRange проверяет приоритет рыночной цены над таблицей.
func TestAllocateProvidedCandidatesOverrideRange(t *testing.T) {
	categories := defaultCategories()
	photo := categoryByName(categories, CategoryPhoto)
	dress := categoryByName(categories, CategoryDress)
	allocator := newTestAllocator(newMemoryStore(categories), allocatorConfig())

	provided := CandidateMap{
		photo.ID: {{ProfileID: uuid.New(), ActualPrice: int64Ptr(250_000)}},
		dress.ID: {{ProfileID: uuid.New()}},
	}

	result, err := allocator.Allocate(context.Background(), AllocationRequest{
		Input:      baseInput(),
		VenuePrice: 1_000_000,
		Mode:       PlanModeBalanced,
		Categories: categories,
		Source:     ProvidedCandidates(provided),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got := allocationsByName(result.Allocations)
	if p := got[CategoryPhoto]; p.AllocatedMin != 225_000 || p.AllocatedMid != 250_000 || p.AllocatedMax != 275_000 {
		t.Fatalf("expected range around actual price, got %+v", p)
	}
	if d := got[CategoryDress]; d.AllocatedMid != 200_000 {
		t.Fatalf("expected unpriced candidate to keep static range, got %+v", d)
	}
	if len(result.Candidates) != len(provided) {
		t.Fatalf("expected provided candidates to pass through, got %v", result.Candidates)
	}
}

// TestAllocateFetchCandidates проверяет поштучную загрузку кандидатов.
func TestAllocateFetchCandidates(t *testing.T) {
	categories := defaultCategories()
	photo := categoryByName(categories, CategoryPhoto)

	store := newMemoryStore(categories)
	store.addProfile(newProfile("Studio", []string{"chiba"}, 180_000), photo.ID)
	allocator := newTestAllocator(store, allocatorConfig())

	result, err := allocator.Allocate(context.Background(), AllocationRequest{
		Input:      baseInput(),
		VenuePrice: 1_000_000,
		Mode:       PlanModeBalanced,
		Categories: categories,
		Source:     FetchCandidates(),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(result.Candidates[photo.ID]) != 1 {
		t.Fatalf("expected fetched photo candidate, got %v", result.Candidates[photo.ID])
	}
	if p := allocationsByName(result.Allocations)[CategoryPhoto]; p.AllocatedMid != 180_000 {
		t.Fatalf("expected allocation to follow fetched price, got %+v", p)
	}
	if len(result.Candidates) != len(result.Allocations) {
		t.Fatalf("expected one lookup per allocated category, got %d for %d", len(result.Candidates), len(result.Allocations))
	}
}

func overflowCategories() []models.Category {
	categories := defaultCategories()
	return []models.Category{
		categoryByName(categories, CategoryPhoto),
		categoryByName(categories, CategoryDress),
		categoryByName(categories, CategoryFlowers),
		categoryByName(categories, CategoryCake),
	}
}

func sumMid(allocs []CategoryAllocation) int64 {
	var total int64
	for _, a := range allocs {
		total += a.AllocatedMid
	}
	return total
}

// TestAllocateCollapsesInOrderUntilFits проверяет сжатие неприоритетных категорий до минимума по порядку.
func TestAllocateCollapsesInOrderUntilFits(t *testing.T) {
	allocator := newTestAllocator(newMemoryStore(nil), allocatorConfig())

	in := baseInput()
	in.TotalBudget = 1_000_000
	in.PriorityCategories = []string{CategoryPhoto}

	result, err := allocator.Allocate(context.Background(), AllocationRequest{Input: in, VenuePrice: 500_000, Mode: PlanModeBalanced, Categories: overflowCategories()})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got := allocationsByName(result.Allocations)
	if p := got[CategoryPhoto]; p.AllocatedMid != 200_000 {
		t.Fatalf("expected priority category untouched, got %+v", p)
	}
	if d := got[CategoryDress]; d.AllocatedMin != 100_000 || d.AllocatedMid != 100_000 || d.AllocatedMax != 120_000 {
		t.Fatalf("expected first non-priority category collapsed, got %+v", d)
	}
	if f := got[CategoryFlowers]; f.AllocatedMid != 100_000 {
		t.Fatalf("expected collapse to stop once the budget fits, got %+v", f)
	}
	if total := sumMid(result.Allocations); total > 500_000 {
		t.Fatalf("expected mids to fit 500000, got %d", total)
	}
}

// TestFitToBudgetDecreasesMonotonically проверяет, что сумма уменьшается шаг за шагом.
func TestFitToBudgetDecreasesMonotonically(t *testing.T) {
	allocator := newTestAllocator(newMemoryStore(nil), allocatorConfig())
	in := baseInput()

	full, err := allocator.Allocate(context.Background(), AllocationRequest{Input: in, VenuePrice: 0, Mode: PlanModeBalanced, Categories: overflowCategories()})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	previous := sumMid(full.Allocations)
	for _, remaining := range []int64{500_000, 400_000, 300_000, 200_000} {
		allocs := make([]CategoryAllocation, len(full.Allocations))
		copy(allocs, full.Allocations)
		allocator.fitToBudget(allocs, remaining, in)

		total := sumMid(allocs)
		if total > previous {
			t.Fatalf("expected total to shrink for remaining %d, got %d after %d", remaining, total, previous)
		}
		previous = total
	}
}

// TestAllocateOverflowIsNotAnError фиксирует текущее поведение: превышение после сжатия не считается ошибкой.
func TestAllocateOverflowIsNotAnError(t *testing.T) {
	allocator := newTestAllocator(newMemoryStore(nil), allocatorConfig())

	in := baseInput()
	in.TotalBudget = 1_000_000
	in.PriorityCategories = []string{CategoryPhoto}

	result, err := allocator.Allocate(context.Background(), AllocationRequest{Input: in, VenuePrice: 900_000, Mode: PlanModeBalanced, Categories: overflowCategories()})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, a := range result.Allocations {
		if a.CategoryName == CategoryPhoto {
			continue
		}
		if a.AllocatedMid != a.AllocatedMin {
			t.Fatalf("expected %s collapsed to minimum, got %+v", a.CategoryName, a)
		}
	}

	if total := sumMid(result.Allocations); total != 380_000 {
		t.Fatalf("expected total 380000 above the 100000 remaining, got %d", total)
	}
}

// TestAllocationMonotonicity проверяет min <= mid <= max во всех режимах.
func TestAllocationMonotonicity(t *testing.T) {
	categories := defaultCategories()
	allocator := newTestAllocator(newMemoryStore(categories), DefaultConfig())

	in := baseInput()
	in.TotalBudget = 2_000_000
	in.PriorityCategories = []string{CategoryDress, CategoryFlowers}

	for _, mode := range []PlanMode{PlanModeBalanced, PlanModePriority, PlanModeBudget} {
		result, err := allocator.Allocate(context.Background(), AllocationRequest{Input: in, VenuePrice: 800_000, Mode: mode, Categories: categories})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		for _, a := range result.Allocations {
			if a.AllocatedMin > a.AllocatedMid || a.AllocatedMid > a.AllocatedMax {
				t.Fatalf("%s: %s violates min <= mid <= max: %+v", mode, a.CategoryName, a)
			}
		}
	}
}
