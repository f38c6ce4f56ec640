package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/wedding-marketplace/backend/internal/genie"
	"example.com/wedding-marketplace/backend/internal/models"
)

const profileColumns = `p.id, p.vendor_id, p.display_name, p.status, p.capacity, p.price_min, p.price_max, p.area_tags,
		COALESCE(array_agg(pc.category_id) FILTER (WHERE pc.category_id IS NOT NULL), '{}') AS category_ids`

// areaTagsClause matches profiles sharing at least one trimmed area tag.
const areaTagsClause = `EXISTS (SELECT 1 FROM unnest(p.area_tags) AS tag WHERE btrim(tag) = ANY(%s))`

type ListingRepository struct {
	db *pgxpool.Pool
}

var _ genie.ListingStore = (*ListingRepository)(nil)

// NewListingRepository создает репозиторий витрины поставщиков.
func NewListingRepository(db *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{db: db}
}

// FindApprovedVenueProfiles возвращает одобренные площадки области с достаточной вместимостью.
func (r *ListingRepository) FindApprovedVenueProfiles(ctx context.Context, areaTags []string, minCapacity int) ([]models.VendorProfile, error) {
	query := `SELECT ` + profileColumns + `
		 FROM vendor_profiles p
		 LEFT JOIN profile_categories pc ON pc.profile_id = p.id
		 WHERE p.status = $1
		   AND p.capacity IS NOT NULL AND p.capacity >= $2
		   AND ` + fmt.Sprintf(areaTagsClause, "$3") + `
		   AND EXISTS (
			SELECT 1 FROM profile_categories vc
			JOIN categories c ON c.id = vc.category_id
			WHERE vc.profile_id = p.id AND c.role = $4
		   )
		 GROUP BY p.id
		 ORDER BY p.id`

	return r.queryProfiles(ctx, query, models.ProfileStatusApproved, minCapacity, nonNilStrings(areaTags), models.CategoryRoleVenue)
}

// FindApprovedProfilesByCategory возвращает одобренные профили категории по фильтру области и цены.
func (r *ListingRepository) FindApprovedProfilesByCategory(ctx context.Context, categoryID uuid.UUID, filter genie.ProfileFilter) ([]models.VendorProfile, error) {
	query, args := categoryProfilesQuery(categoryID, filter)
	return r.queryProfiles(ctx, query, args...)
}

func categoryProfilesQuery(categoryID uuid.UUID, filter genie.ProfileFilter) (string, []any) {
	args := []any{models.ProfileStatusApproved, categoryID}
	conditions := []string{
		"p.status = $1",
		"EXISTS (SELECT 1 FROM profile_categories fc WHERE fc.profile_id = p.id AND fc.category_id = $2)",
	}

	if filter.AreaTags != nil {
		args = append(args, filter.AreaTags)
		conditions = append(conditions, fmt.Sprintf(areaTagsClause, fmt.Sprintf("$%d", len(args))))
	}

	if filter.Price != nil {
		args = append(args, filter.Price.Ceiling, filter.Price.Floor)
		conditions = append(conditions, fmt.Sprintf(
			"((p.price_min IS NULL AND p.price_max IS NULL) OR p.price_min <= $%d OR p.price_max >= $%d)",
			len(args)-1, len(args),
		))
	}

	order := "p.id"
	if filter.OrderByPriceMin {
		order = "p.price_min ASC NULLS LAST, p.id"
	}

	var b strings.Builder
	b.WriteString(`SELECT ` + profileColumns + `
		 FROM vendor_profiles p
		 LEFT JOIN profile_categories pc ON pc.profile_id = p.id
		 WHERE `)
	b.WriteString(strings.Join(conditions, "\n\t\t   AND "))
	b.WriteString("\n\t\t GROUP BY p.id\n\t\t ORDER BY " + order)
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&b, "\n\t\t LIMIT $%d", len(args))
	}

	return b.String(), args
}

// FindApprovedProfilesByCategories возвращает одобренные профили любой из категорий одним запросом.
func (r *ListingRepository) FindApprovedProfilesByCategories(ctx context.Context, categoryIDs []uuid.UUID) ([]models.VendorProfile, error) {
	if len(categoryIDs) == 0 {
		return []models.VendorProfile{}, nil
	}

	query := `SELECT ` + profileColumns + `
		 FROM vendor_profiles p
		 LEFT JOIN profile_categories pc ON pc.profile_id = p.id
		 WHERE p.status = $1
		   AND EXISTS (SELECT 1 FROM profile_categories fc WHERE fc.profile_id = p.id AND fc.category_id = ANY($2))
		 GROUP BY p.id
		 ORDER BY p.id`

	return r.queryProfiles(ctx, query, models.ProfileStatusApproved, categoryIDs)
}

// ListCategories возвращает категории, кроме перечисленных по имени.
func (r *ListingRepository) ListCategories(ctx context.Context, excluding []string) ([]models.Category, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, role, unit_kind, sort_order
		 FROM categories
		 WHERE name <> ALL($1)
		 ORDER BY sort_order, name`,
		nonNilStrings(excluding),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]models.Category, 0)
	for rows.Next() {
		var category models.Category

		if err := rows.Scan(&category.ID, &category.Name, &category.Role, &category.Unit, &category.SortOrder); err != nil {
			return nil, err
		}

		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *ListingRepository) queryProfiles(ctx context.Context, query string, args ...any) ([]models.VendorProfile, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	profiles, err := pgx.CollectRows(rows, scanProfile)
	if err != nil {
		return nil, err
	}

	if err := r.attachPlans(ctx, profiles); err != nil {
		return nil, err
	}

	return profiles, nil
}

func scanProfile(row pgx.CollectableRow) (models.VendorProfile, error) {
	var p models.VendorProfile
	err := row.Scan(&p.ID, &p.VendorID, &p.DisplayName, &p.Status, &p.Capacity, &p.PriceMin, &p.PriceMax, &p.AreaTags, &p.CategoryIDs)
	return p, err
}

func (r *ListingRepository) attachPlans(ctx context.Context, profiles []models.VendorProfile) error {
	if len(profiles) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(profiles))
	index := make(map[uuid.UUID]int, len(profiles))
	for i, p := range profiles {
		ids = append(ids, p.ID)
		index[p.ID] = i
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, profile_id, name, price
		 FROM profile_plans
		 WHERE profile_id = ANY($1)
		 ORDER BY price, id`,
		ids,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			plan      models.ProfilePlan
			profileID uuid.UUID
		)

		if err := rows.Scan(&plan.ID, &profileID, &plan.Name, &plan.Price); err != nil {
			return err
		}

		if i, ok := index[profileID]; ok {
			profiles[i].Plans = append(profiles[i].Plans, plan)
		}
	}

	return rows.Err()
}

// nonNilStrings keeps ANY/ALL comparisons away from a NULL array.
func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
