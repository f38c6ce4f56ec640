package genie

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"example.com/wedding-marketplace/backend/internal/models"
)

// Category names used by the default tables.
const (
	CategoryVenue        = "会場"
	CategoryPhoto        = "写真"
	CategoryVideo        = "映像"
	CategoryDress        = "ドレス"
	CategoryTuxedo       = "タキシード"
	CategoryHairMakeup   = "ヘアメイク"
	CategoryFlowers      = "装花"
	CategoryCake         = "ケーキ"
	CategoryGiftFavors   = "引出物"
	CategoryMC           = "司会"
	CategoryInvitations  = "招待状"
	CategoryPerformance  = "演出"
	CategoryPlanner      = "プランナー"
	CategoryDayOfPlanner = "当日プランナー"
)

type BudgetRange struct {
	Min int64 `json:"min" yaml:"min"`
	Mid int64 `json:"mid" yaml:"mid"`
	Max int64 `json:"max" yaml:"max"`
}

func (r BudgetRange) valid() bool {
	return r.Min >= 0 && r.Min <= r.Mid && r.Mid <= r.Max
}

type VenueConfig struct {
	IdealMinRatio        float64 `yaml:"ideal_min_ratio"`
	IdealCenterRatio     float64 `yaml:"ideal_center_ratio"`
	IdealMaxRatio        float64 `yaml:"ideal_max_ratio"`
	CandidateLimit       int     `yaml:"candidate_limit"`
	AlternateCount       int     `yaml:"alternate_count"`
	DefaultPricePerGuest int64   `yaml:"default_price_per_guest"`
}

// Config is the immutable set of tables the engine runs against.
type Config struct {
	CategoryRanges     map[string]BudgetRange             `yaml:"category_ranges"`
	PlannerCosts       map[models.PlannerType]BudgetRange `yaml:"planner_costs"`
	Venue              VenueConfig                        `yaml:"venue"`
	CandidateLimit     int                                `yaml:"candidate_limit"`
	DisplayCount       int                                `yaml:"display_count"`
	MaxPriorityCount   int                                `yaml:"max_priority_count"`
	RelaxedPriceFactor float64                            `yaml:"relaxed_price_factor"`
}

// DefaultConfig возвращает базовые диапазоны бюджета по категориям.
func DefaultConfig() Config {
	return Config{
		CategoryRanges: map[string]BudgetRange{
			CategoryPhoto:       {Min: 150_000, Mid: 250_000, Max: 400_000},
			CategoryVideo:       {Min: 100_000, Mid: 200_000, Max: 350_000},
			CategoryDress:       {Min: 150_000, Mid: 300_000, Max: 500_000},
			CategoryTuxedo:      {Min: 50_000, Mid: 100_000, Max: 180_000},
			CategoryHairMakeup:  {Min: 50_000, Mid: 100_000, Max: 150_000},
			CategoryFlowers:     {Min: 100_000, Mid: 200_000, Max: 350_000},
			CategoryCake:        {Min: 30_000, Mid: 60_000, Max: 100_000},
			CategoryGiftFavors:  {Min: 3_000, Mid: 5_000, Max: 8_000},
			CategoryMC:          {Min: 50_000, Mid: 80_000, Max: 120_000},
			CategoryInvitations: {Min: 20_000, Mid: 40_000, Max: 70_000},
			CategoryPerformance: {Min: 30_000, Mid: 80_000, Max: 150_000},
		},
		PlannerCosts: map[models.PlannerType]BudgetRange{
			models.PlannerTypePlanner:   {Min: 300_000, Mid: 450_000, Max: 700_000},
			models.PlannerTypeDayOf:     {Min: 80_000, Mid: 120_000, Max: 200_000},
			models.PlannerTypeSelf:      {Min: 0, Mid: 0, Max: 0},
			models.PlannerTypeUndecided: {Min: 0, Mid: 120_000, Max: 450_000},
		},
		Venue: VenueConfig{
			IdealMinRatio:        0.35,
			IdealCenterRatio:     0.42,
			IdealMaxRatio:        0.50,
			CandidateLimit:       7,
			AlternateCount:       2,
			DefaultPricePerGuest: 30_000,
		},
		CandidateLimit:     5,
		DisplayCount:       3,
		MaxPriorityCount:   2,
		RelaxedPriceFactor: 0.5,
	}
}

// LoadConfig читает YAML-файл с таблицами поверх значений по умолчанию.
// Пустой путь возвращает значения по умолчанию.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read genie tables %s: %w", path, err)
	}

	var override Config
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return cfg, fmt.Errorf("parse genie tables %s: %w", path, err)
	}

	cfg = cfg.merge(override)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (c Config) merge(o Config) Config {
	out := c
	out.CategoryRanges = make(map[string]BudgetRange, len(c.CategoryRanges))
	for name, r := range c.CategoryRanges {
		out.CategoryRanges[name] = r
	}
	for name, r := range o.CategoryRanges {
		out.CategoryRanges[name] = r
	}

	out.PlannerCosts = make(map[models.PlannerType]BudgetRange, len(c.PlannerCosts))
	for key, r := range c.PlannerCosts {
		out.PlannerCosts[key] = r
	}
	for key, r := range o.PlannerCosts {
		out.PlannerCosts[key] = r
	}

	if o.Venue.IdealMinRatio > 0 {
		out.Venue.IdealMinRatio = o.Venue.IdealMinRatio
	}
	if o.Venue.IdealCenterRatio > 0 {
		out.Venue.IdealCenterRatio = o.Venue.IdealCenterRatio
	}
	if o.Venue.IdealMaxRatio > 0 {
		out.Venue.IdealMaxRatio = o.Venue.IdealMaxRatio
	}
	if o.Venue.CandidateLimit > 0 {
		out.Venue.CandidateLimit = o.Venue.CandidateLimit
	}
	if o.Venue.AlternateCount > 0 {
		out.Venue.AlternateCount = o.Venue.AlternateCount
	}
	if o.Venue.DefaultPricePerGuest > 0 {
		out.Venue.DefaultPricePerGuest = o.Venue.DefaultPricePerGuest
	}
	if o.CandidateLimit > 0 {
		out.CandidateLimit = o.CandidateLimit
	}
	if o.DisplayCount > 0 {
		out.DisplayCount = o.DisplayCount
	}
	if o.MaxPriorityCount > 0 {
		out.MaxPriorityCount = o.MaxPriorityCount
	}
	if o.RelaxedPriceFactor > 0 {
		out.RelaxedPriceFactor = o.RelaxedPriceFactor
	}

	return out
}

// Validate проверяет согласованность таблиц.
func (c Config) Validate() error {
	for name, r := range c.CategoryRanges {
		if !r.valid() {
			return fmt.Errorf("category range %s must satisfy 0 <= min <= mid <= max", name)
		}
	}

	for key, r := range c.PlannerCosts {
		if !r.valid() {
			return fmt.Errorf("planner cost %s must satisfy 0 <= min <= mid <= max", key)
		}
	}

	v := c.Venue
	if !(v.IdealMinRatio <= v.IdealCenterRatio && v.IdealCenterRatio <= v.IdealMaxRatio) {
		return fmt.Errorf("venue ratios must satisfy ideal_min <= ideal_center <= ideal_max")
	}

	if v.CandidateLimit <= 0 {
		return fmt.Errorf("venue candidate_limit must be greater than 0")
	}

	if c.CandidateLimit <= 0 || c.DisplayCount <= 0 {
		return fmt.Errorf("candidate_limit and display_count must be greater than 0")
	}

	if c.DisplayCount > c.CandidateLimit {
		return fmt.Errorf("display_count cannot exceed candidate_limit")
	}

	if c.RelaxedPriceFactor <= 0 || c.RelaxedPriceFactor >= 1 {
		return fmt.Errorf("relaxed_price_factor must be between 0 and 1")
	}

	return nil
}
