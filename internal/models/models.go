package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CategoryRole string

type UnitKind string

type PlannerType string

type ProfileStatus string

const (
	CategoryRoleNormal       CategoryRole = "normal"
	CategoryRoleVenue        CategoryRole = "venue"
	CategoryRolePlanner      CategoryRole = "planner"
	CategoryRoleDayOfPlanner CategoryRole = "day_of_planner"

	UnitKindPerItem  UnitKind = "per_item"
	UnitKindPerGuest UnitKind = "per_guest"

	PlannerTypePlanner   PlannerType = "planner"
	PlannerTypeDayOf     PlannerType = "day_of"
	PlannerTypeSelf      PlannerType = "self"
	PlannerTypeUndecided PlannerType = "undecided"

	ProfileStatusPending  ProfileStatus = "pending"
	ProfileStatusApproved ProfileStatus = "approved"
	ProfileStatusRejected ProfileStatus = "rejected"
)

// Valid сообщает, входит ли тип планировщика в допустимый набор.
func (p PlannerType) Valid() bool {
	switch p {
	case PlannerTypePlanner, PlannerTypeDayOf, PlannerTypeSelf, PlannerTypeUndecided:
		return true
	}
	return false
}

type Category struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Role      CategoryRole `json:"role"`
	Unit      UnitKind     `json:"unit_kind"`
	SortOrder int          `json:"sort_order"`
}

// IsVenue сообщает, является ли категория площадкой.
func (c Category) IsVenue() bool {
	return c.Role == CategoryRoleVenue
}

// PerGuest сообщает, указывается ли цена категории за одного гостя.
func (c Category) PerGuest() bool {
	return c.Unit == UnitKindPerGuest
}

type ProfilePlan struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Price int64     `json:"price"`
}

type VendorProfile struct {
	ID          uuid.UUID     `json:"id"`
	VendorID    uuid.UUID     `json:"vendor_id"`
	DisplayName string        `json:"display_name"`
	Status      ProfileStatus `json:"status"`
	Capacity    *int          `json:"capacity,omitempty"`
	PriceMin    *int64        `json:"price_min,omitempty"`
	PriceMax    *int64        `json:"price_max,omitempty"`
	AreaTags    []string      `json:"area_tags"`
	CategoryIDs []uuid.UUID   `json:"category_ids,omitempty"`
	Plans       []ProfilePlan `json:"plans,omitempty"`
}

// HasCategory сообщает, привязан ли профиль к категории.
func (p VendorProfile) HasCategory(categoryID uuid.UUID) bool {
	for _, id := range p.CategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}

// CheapestPlanPrice возвращает минимальную цену среди планов профиля.
func (p VendorProfile) CheapestPlanPrice() (int64, bool) {
	if len(p.Plans) == 0 {
		return 0, false
	}

	cheapest := p.Plans[0].Price
	for _, plan := range p.Plans[1:] {
		if plan.Price < cheapest {
			cheapest = plan.Price
		}
	}
	return cheapest, true
}

type SavedPlan struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Input     json.RawMessage `json:"input"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}
