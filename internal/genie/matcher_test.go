package genie

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"example.com/wedding-marketplace/backend/internal/models"
)

func pricedProfile(name string, tags []string, min, max *int64) models.VendorProfile {
	p := newProfile(name, tags)
	p.PriceMin = min
	p.PriceMax = max
	return p
}

// TestMatchPerGuestScaling проверяет умножение цены за гостя на число гостей.
func TestMatchPerGuestScaling(t *testing.T) {
	categories := defaultCategories()
	gifts := categoryByName(categories, CategoryGiftFavors)

	store := newMemoryStore(categories)
	store.addProfile(newProfile("Gift shop", []string{"chiba"}, 2000, 3000), gifts.ID)

	matcher := NewMatcher(store, testResolver(), DefaultConfig())
	found, err := matcher.Match(context.Background(), CandidateQuery{Category: gifts, Area: "chiba", Target: 250_000, GuestCount: 50})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(found) != 1 || found[0].ActualPrice == nil {
		t.Fatalf("expected one priced candidate, got %+v", found)
	}
	if *found[0].ActualPrice != 100_000 {
		t.Fatalf("expected actual price 100000, got %d", *found[0].ActualPrice)
	}
}

// TestMatchAreaFallbackTier проверяет, что профиль чужой области попадает только в запасную ступень.
func TestMatchAreaFallbackTier(t *testing.T) {
	categories := defaultCategories()
	photo := categoryByName(categories, CategoryPhoto)

	store := newMemoryStore(categories)
	tokyo := store.addProfile(newProfile("Tokyo studio", []string{"tokyo"}, 250_000), photo.ID)
	matcher := NewMatcher(store, testResolver(), DefaultConfig())

	for _, search := range []string{"tokyo", "kanto"} {
		found, err := matcher.Match(context.Background(), CandidateQuery{Category: photo, Area: search, Target: 250_000, GuestCount: 30})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(found) != 1 || found[0].ProfileID != tokyo.ID || found[0].IsFallback {
			t.Fatalf("expected strict match for %s, got %+v", search, found)
		}
	}

	found, err := matcher.Match(context.Background(), CandidateQuery{Category: photo, Area: "osaka", Target: 250_000, GuestCount: 30})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(found) != 1 || !found[0].IsFallback {
		t.Fatalf("expected fallback candidate for unrelated area, got %+v", found)
	}
}

// TestMatchRelaxedPriceTier проверяет расширение ценового окна на ±50%.
func TestMatchRelaxedPriceTier(t *testing.T) {
	categories := defaultCategories()
	cake := categoryByName(categories, CategoryCake)

	store := newMemoryStore(categories)
	near := store.addProfile(pricedProfile("Near", []string{"osaka"}, int64Ptr(140_000), nil), cake.ID)
	store.addProfile(pricedProfile("Far", []string{"osaka"}, int64Ptr(200_000), nil), cake.ID)

	matcher := NewMatcher(store, testResolver(), DefaultConfig())
	found, err := matcher.Match(context.Background(), CandidateQuery{Category: cake, Area: "osaka", Target: 100_000, GuestCount: 30})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(found) != 1 || found[0].ProfileID != near.ID {
		t.Fatalf("expected only the relaxed-window profile, got %+v", found)
	}
	if found[0].IsFallback {
		t.Fatal("expected relaxed tier candidate not to be flagged as fallback")
	}
}

// TestMatchRanking проверяет сортировку по расстоянию до целевого бюджета и ограничение выдачи.
func TestMatchRanking(t *testing.T) {
	categories := defaultCategories()
	dress := categoryByName(categories, CategoryDress)

	store := newMemoryStore(categories)
	unpriced := store.addProfile(newProfile("Unpriced", []string{"kyoto"}), dress.ID)
	prices := []int64{500_000, 310_000, 100_000, 280_000, 300_000, 450_000}
	ids := make(map[int64]uuid.UUID, len(prices))
	for _, price := range prices {
		p := store.addProfile(newProfile("Dress", []string{"kyoto"}, price), dress.ID)
		ids[price] = p.ID
	}

	matcher := NewMatcher(store, testResolver(), DefaultConfig())
	found, err := matcher.Match(context.Background(), CandidateQuery{Category: dress, Area: "kyoto", Target: 300_000, GuestCount: 30})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []int64{300_000, 310_000, 280_000, 450_000, 500_000}
	if len(found) != len(want) {
		t.Fatalf("expected %d candidates, got %d", len(want), len(found))
	}
	for i, price := range want {
		if found[i].ProfileID != ids[price] {
			t.Fatalf("expected candidate %d priced %d, got %v", i, price, *found[i].ActualPrice)
		}
	}
	for _, c := range found {
		if c.ProfileID == unpriced.ID {
			t.Fatal("expected unpriced profile to rank after priced ones and be truncated")
		}
	}
}

// TestMatchIdempotent проверяет одинаковый порядок при повторных вызовах.
func TestMatchIdempotent(t *testing.T) {
	categories := defaultCategories()
	flowers := categoryByName(categories, CategoryFlowers)

	store := newMemoryStore(categories)
	for _, price := range []int64{180_000, 220_000, 200_000, 220_000, 180_000} {
		store.addProfile(newProfile("Florist", []string{"aichi"}, price), flowers.ID)
	}

	matcher := NewMatcher(store, testResolver(), DefaultConfig())
	q := CandidateQuery{Category: flowers, Area: "tokai", Target: 200_000, GuestCount: 30}

	first, err := matcher.Match(context.Background(), q)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := matcher.Match(context.Background(), q)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
}

// TestMatchAllAgreesWithMatch проверяет совпадение пакетного и поштучного поиска.
func TestMatchAllAgreesWithMatch(t *testing.T) {
	categories := defaultCategories()
	photo := categoryByName(categories, CategoryPhoto)
	cake := categoryByName(categories, CategoryCake)
	gifts := categoryByName(categories, CategoryGiftFavors)

	store := newMemoryStore(categories)
	store.addProfile(newProfile("Photo A", []string{"chiba"}, 240_000), photo.ID)
	store.addProfile(pricedProfile("Photo B", []string{"千葉県"}, int64Ptr(200_000), int64Ptr(300_000)), photo.ID)
	store.addProfile(newProfile("Photo far", []string{"osaka"}, 250_000), photo.ID)
	store.addProfile(pricedProfile("Cake far", []string{"osaka"}, int64Ptr(90_000), nil), cake.ID)
	store.addProfile(pricedProfile("Cake cheap far", []string{"hyogo"}, int64Ptr(40_000), nil), cake.ID)
	store.addProfile(newProfile("Gifts nationwide", []string{"全国"}, 4_000), gifts.ID, photo.ID)

	targets := map[uuid.UUID]int64{photo.ID: 250_000, cake.ID: 60_000, gifts.ID: 150_000}
	selected := []models.Category{photo, cake, gifts}

	matcher := NewMatcher(store, testResolver(), DefaultConfig())
	batch, err := matcher.MatchAll(context.Background(), "chiba", 30, selected, targets)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, category := range selected {
		single, err := matcher.Match(context.Background(), CandidateQuery{Category: category, Area: "chiba", Target: targets[category.ID], GuestCount: 30})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !reflect.DeepEqual(single, batch[category.ID]) {
			t.Fatalf("%s: expected batch %+v to equal single %+v", category.Name, batch[category.ID], single)
		}
	}

	cakes := batch[cake.ID]
	if len(cakes) != 2 || !cakes[0].IsFallback || cakes[0].Name != "Cake cheap far" {
		t.Fatalf("expected fallback cakes ranked by distance, got %+v", cakes)
	}
}

// TestMatchStoreFailure проверяет, что ошибка хранилища не превращается в пустой результат.
func TestMatchStoreFailure(t *testing.T) {
	categories := defaultCategories()
	store := newMemoryStore(categories)
	store.err = errors.New("timeout")

	matcher := NewMatcher(store, testResolver(), DefaultConfig())
	_, err := matcher.MatchAll(context.Background(), "chiba", 30, categories[1:2], map[uuid.UUID]int64{})
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}
