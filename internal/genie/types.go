package genie

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"example.com/wedding-marketplace/backend/internal/models"
)

type PlanMode string

const (
	PlanModeBalanced PlanMode = "balanced"
	PlanModePriority PlanMode = "priority"
	PlanModeBudget   PlanMode = "budget"
)

type Input struct {
	Area               string             `json:"area"`
	GuestCount         int                `json:"guest_count"`
	TotalBudget        int64              `json:"total_budget"`
	ExcludedCategories []string           `json:"excluded_categories,omitempty"`
	PriorityCategories []string           `json:"priority_categories,omitempty"`
	PlannerType        models.PlannerType `json:"planner_type"`
}

// Validate проверяет входные параметры генерации плана.
func (in Input) Validate(maxPriority int) error {
	if strings.TrimSpace(in.Area) == "" {
		return fmt.Errorf("%w: area is required", ErrInvalidInput)
	}
	if in.GuestCount <= 0 {
		return fmt.Errorf("%w: guest_count must be greater than 0", ErrInvalidInput)
	}
	if in.TotalBudget <= 0 {
		return fmt.Errorf("%w: total_budget must be greater than 0", ErrInvalidInput)
	}
	if len(in.PriorityCategories) > maxPriority {
		return fmt.Errorf("%w: at most %d priority categories allowed", ErrInvalidInput, maxPriority)
	}
	if !in.PlannerType.Valid() {
		return fmt.Errorf("%w: unknown planner_type %q", ErrInvalidInput, in.PlannerType)
	}
	return nil
}

func (in Input) excludes(name string) bool {
	return containsName(in.ExcludedCategories, name)
}

func (in Input) prioritizes(name string) bool {
	return containsName(in.PriorityCategories, name)
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if strings.TrimSpace(n) == name {
			return true
		}
	}
	return false
}

type VenueCandidate struct {
	VendorID       uuid.UUID `json:"vendor_id"`
	ProfileID      uuid.UUID `json:"profile_id"`
	Name           string    `json:"name"`
	EstimatedPrice int64     `json:"estimated_price"`
	Ratio          float64   `json:"ratio"`
	Score          float64   `json:"score"`
}

type CategoryAllocation struct {
	CategoryID   uuid.UUID `json:"category_id"`
	CategoryName string    `json:"category_name"`
	AllocatedMin int64     `json:"allocated_min"`
	AllocatedMid int64     `json:"allocated_mid"`
	AllocatedMax int64     `json:"allocated_max"`
}

type VendorCandidate struct {
	VendorID    uuid.UUID            `json:"vendor_id"`
	ProfileID   uuid.UUID            `json:"profile_id"`
	Name        string               `json:"name"`
	PriceMin    *int64               `json:"price_min"`
	PriceMax    *int64               `json:"price_max"`
	ActualPrice *int64               `json:"actual_price"`
	Plans       []models.ProfilePlan `json:"plans,omitempty"`
	IsFallback  bool                 `json:"is_fallback,omitempty"`
}

// CandidateMap holds ranked candidates per category id.
type CandidateMap map[uuid.UUID][]VendorCandidate

type candidateMode int

const (
	candidatesOmit candidateMode = iota
	candidatesFetch
	candidatesProvided
)

// CandidateSource tells the allocator where market prices come from.
// The zero value skips candidate lookups entirely.
type CandidateSource struct {
	mode     candidateMode
	provided CandidateMap
}

// OmitCandidates считает только бюджетные доли без поиска кандидатов.
func OmitCandidates() CandidateSource {
	return CandidateSource{mode: candidatesOmit}
}

// FetchCandidates ищет кандидатов по каждой категории отдельно.
func FetchCandidates() CandidateSource {
	return CandidateSource{mode: candidatesFetch}
}

// ProvidedCandidates использует заранее загруженных кандидатов.
func ProvidedCandidates(candidates CandidateMap) CandidateSource {
	if candidates == nil {
		candidates = CandidateMap{}
	}
	return CandidateSource{mode: candidatesProvided, provided: candidates}
}

type VenueSelection struct {
	Selected     VenueCandidate   `json:"selected"`
	Alternatives []VenueCandidate `json:"alternatives"`
	PriceMin     int64            `json:"price_min"`
	PriceMid     int64            `json:"price_mid"`
	PriceMax     int64            `json:"price_max"`
}

type Totals struct {
	TotalMin int64 `json:"total_min"`
	TotalMid int64 `json:"total_mid"`
	TotalMax int64 `json:"total_max"`
}

type PlanResult struct {
	PlanType                 PlanMode             `json:"plan_type"`
	Venue                    VenueSelection       `json:"venue"`
	PlannerType              models.PlannerType   `json:"planner_type"`
	PlannerCost              BudgetRange          `json:"planner_cost"`
	CategoryAllocations      []CategoryAllocation `json:"category_allocations"`
	CategoryVendorCandidates CandidateMap         `json:"category_vendor_candidates"`
	Totals                   Totals               `json:"totals"`
}
