package genie

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"example.com/wedding-marketplace/backend/internal/area"
	"example.com/wedding-marketplace/backend/internal/models"
)

// memoryStore mirrors the SQL filters of the postgres listing store.
type memoryStore struct {
	mu         sync.Mutex
	categories []models.Category
	profiles   []models.VendorProfile
	venueIDs   map[uuid.UUID]struct{}
	err        error
	calls      int
}

func newMemoryStore(categories []models.Category) *memoryStore {
	return &memoryStore{categories: categories, venueIDs: make(map[uuid.UUID]struct{})}
}

func (s *memoryStore) addVenue(name string, capacity int, tags []string, plans ...int64) models.VendorProfile {
	return s.addVenueProfile(newProfile(name, tags, plans...), capacity)
}

func (s *memoryStore) addVenueProfile(p models.VendorProfile, capacity int) models.VendorProfile {
	p.Capacity = &capacity
	for _, c := range s.categories {
		if c.IsVenue() {
			p.CategoryIDs = []uuid.UUID{c.ID}
		}
	}
	s.venueIDs[p.ID] = struct{}{}
	s.profiles = append(s.profiles, p)
	return p
}

func (s *memoryStore) addProfile(p models.VendorProfile, categoryIDs ...uuid.UUID) models.VendorProfile {
	p.CategoryIDs = categoryIDs
	s.profiles = append(s.profiles, p)
	return p
}

func newProfile(name string, tags []string, plans ...int64) models.VendorProfile {
	p := models.VendorProfile{
		ID:          uuid.New(),
		VendorID:    uuid.New(),
		DisplayName: name,
		Status:      models.ProfileStatusApproved,
		AreaTags:    tags,
	}
	for i, price := range plans {
		p.Plans = append(p.Plans, models.ProfilePlan{ID: uuid.New(), Name: name + " plan " + string(rune('A'+i)), Price: price})
	}
	return p
}

func int64Ptr(v int64) *int64 {
	return &v
}

func (s *memoryStore) FindApprovedVenueProfiles(_ context.Context, areaTags []string, minCapacity int) ([]models.VendorProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}

	out := make([]models.VendorProfile, 0)
	for _, p := range s.profiles {
		if _, ok := s.venueIDs[p.ID]; !ok || p.Status != models.ProfileStatusApproved {
			continue
		}
		if p.Capacity == nil || *p.Capacity < minCapacity {
			continue
		}
		if !matchesTags(p.AreaTags, areaTags) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *memoryStore) FindApprovedProfilesByCategory(_ context.Context, categoryID uuid.UUID, filter ProfileFilter) ([]models.VendorProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}

	out := make([]models.VendorProfile, 0)
	for _, p := range s.profiles {
		if p.Status != models.ProfileStatusApproved || !p.HasCategory(categoryID) {
			continue
		}
		if filter.AreaTags != nil && !matchesTags(p.AreaTags, filter.AreaTags) {
			continue
		}
		if filter.Price != nil && !filter.Price.Admits(p) {
			continue
		}
		out = append(out, p)
	}

	if filter.OrderByPriceMin {
		sortByPriceMin(out)
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *memoryStore) FindApprovedProfilesByCategories(_ context.Context, categoryIDs []uuid.UUID) ([]models.VendorProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}

	out := make([]models.VendorProfile, 0)
	for _, p := range s.profiles {
		if p.Status != models.ProfileStatusApproved {
			continue
		}
		for _, id := range categoryIDs {
			if p.HasCategory(id) {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (s *memoryStore) ListCategories(_ context.Context, excluding []string) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}

	out := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if containsName(excluding, c.Name) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func matchesTags(profileTags, wanted []string) bool {
	for _, tag := range profileTags {
		for _, w := range wanted {
			if strings.TrimSpace(tag) == w {
				return true
			}
		}
	}
	return false
}

func testCategory(name string, role models.CategoryRole, unit models.UnitKind) models.Category {
	return models.Category{ID: uuid.New(), Name: name, Role: role, Unit: unit}
}

func defaultCategories() []models.Category {
	return []models.Category{
		testCategory(CategoryVenue, models.CategoryRoleVenue, models.UnitKindPerItem),
		testCategory(CategoryPhoto, models.CategoryRoleNormal, models.UnitKindPerItem),
		testCategory(CategoryDress, models.CategoryRoleNormal, models.UnitKindPerItem),
		testCategory(CategoryFlowers, models.CategoryRoleNormal, models.UnitKindPerItem),
		testCategory(CategoryCake, models.CategoryRoleNormal, models.UnitKindPerItem),
		testCategory(CategoryGiftFavors, models.CategoryRoleNormal, models.UnitKindPerGuest),
		testCategory(CategoryPlanner, models.CategoryRolePlanner, models.UnitKindPerItem),
	}
}

func categoryByName(categories []models.Category, name string) models.Category {
	for _, c := range categories {
		if c.Name == name {
			return c
		}
	}
	panic("unknown category " + name)
}

func testResolver() *area.Resolver {
	return area.NewResolver(area.DefaultTable())
}
