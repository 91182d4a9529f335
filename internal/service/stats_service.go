package service

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// StatsService aggregates plate figures straight in SQL, mirroring the
// per-plate cost derivation so summed totals always match the listing.
type StatsService struct {
	db       *gorm.DB
	settings *SettingsService
}

func NewStatsService(db *gorm.DB, settings *SettingsService) *StatsService {
	return &StatsService{db: db, settings: settings}
}

// Stats is the studio-wide dashboard summary.
type Stats struct {
	TotalPlates       int64   `json:"total_plates"`
	TotalMaterialUsed float64 `json:"total_material_used"`
	TotalPrintTime    float64 `json:"total_print_time"`
	TotalSales        float64 `json:"total_sales"`
	TotalMaterialCost float64 `json:"total_material_cost"`
	TotalTimeCost     float64 `json:"total_time_cost"`
	TotalCost         float64 `json:"total_cost"`
	TotalProfit       float64 `json:"total_profit"`
}

// ScopedStats is the per-user or per-project summary. Its cost column is
// always the weight-based material cost, regardless of the global cost
// model; that asymmetry is deliberate and matches how the dashboards have
// always read.
type ScopedStats struct {
	TotalPlates       int64   `json:"total_plates"`
	TotalMaterialUsed float64 `json:"total_material_used"`
	TotalPrintTime    float64 `json:"total_print_time"`
	TotalSales        float64 `json:"total_sales"`
	TotalCost         float64 `json:"total_cost"`
	TotalProfit       float64 `json:"total_profit"`
}

// StatsFilter narrows aggregates to a date window. End is inclusive of
// the whole end day.
type StatsFilter struct {
	Start *time.Time
	End   *time.Time
}

// Global computes the studio summary under the configured cost model. The
// max model takes, per plate, the larger of material and time cost, so the
// totals equal the sum of the listing's per-plate figures.
func (s *StatsService) Global(ctx context.Context, filter StatsFilter) (*Stats, error) {
	cm, _, err := s.settings.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT
			COUNT(p.id) AS total_plates,
			COALESCE(SUM(p.grams_used), 0) AS total_material_used,
			COALESCE(SUM(p.print_time), 0) AS total_print_time,
			COALESCE(SUM(p.price_sold), 0) AS total_sales,
			COALESCE(SUM(p.grams_used * COALESCE(m.cost_per_gram, 0)), 0) AS total_material_cost,
			COALESCE(SUM(p.print_time * ?), 0) AS total_time_cost,
			COALESCE(SUM(CASE WHEN ? = 'max'
				THEN MAX(p.grams_used * COALESCE(m.cost_per_gram, 0), p.print_time * ?)
				ELSE p.grams_used * COALESCE(m.cost_per_gram, 0) END), 0) AS total_cost,
			COALESCE(SUM(p.price_sold - CASE WHEN ? = 'max'
				THEN MAX(p.grams_used * COALESCE(m.cost_per_gram, 0), p.print_time * ?)
				ELSE p.grams_used * COALESCE(m.cost_per_gram, 0) END), 0) AS total_profit
		FROM plates p
		LEFT JOIN materials m ON m.id = p.material_id`
	args := []interface{}{cm.TimeCostRate, cm.Model, cm.TimeCostRate, cm.Model, cm.TimeCostRate}
	query, args = appendDateWindow(query, args, "WHERE", filter)

	var stats Stats
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// ForUser aggregates across all of a user's projects.
func (s *StatsService) ForUser(ctx context.Context, userID uint, filter StatsFilter) (*ScopedStats, error) {
	query := `
		SELECT
			COUNT(p.id) AS total_plates,
			COALESCE(SUM(p.grams_used), 0) AS total_material_used,
			COALESCE(SUM(p.print_time), 0) AS total_print_time,
			COALESCE(SUM(p.price_sold), 0) AS total_sales,
			COALESCE(SUM(p.grams_used * COALESCE(m.cost_per_gram, 0)), 0) AS total_cost,
			COALESCE(SUM(p.price_sold - p.grams_used * COALESCE(m.cost_per_gram, 0)), 0) AS total_profit
		FROM plates p
		JOIN projects pr ON pr.id = p.project_id
		LEFT JOIN materials m ON m.id = p.material_id
		WHERE pr.user_id = ?`
	args := []interface{}{userID}
	query, args = appendDateWindow(query, args, "AND", filter)

	var stats ScopedStats
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// ForProject aggregates a single project's plates.
func (s *StatsService) ForProject(ctx context.Context, projectID uint, filter StatsFilter) (*ScopedStats, error) {
	query := `
		SELECT
			COUNT(p.id) AS total_plates,
			COALESCE(SUM(p.grams_used), 0) AS total_material_used,
			COALESCE(SUM(p.print_time), 0) AS total_print_time,
			COALESCE(SUM(p.price_sold), 0) AS total_sales,
			COALESCE(SUM(p.grams_used * COALESCE(m.cost_per_gram, 0)), 0) AS total_cost,
			COALESCE(SUM(p.price_sold - p.grams_used * COALESCE(m.cost_per_gram, 0)), 0) AS total_profit
		FROM plates p
		LEFT JOIN materials m ON m.id = p.material_id
		WHERE p.project_id = ?`
	args := []interface{}{projectID}
	query, args = appendDateWindow(query, args, "AND", filter)

	var stats ScopedStats
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func appendDateWindow(query string, args []interface{}, conjunction string, filter StatsFilter) (string, []interface{}) {
	if filter.Start != nil {
		query += " " + conjunction + " p.date >= ?"
		conjunction = "AND"
		args = append(args, *filter.Start)
	}
	if filter.End != nil {
		query += " " + conjunction + " p.date < ?"
		args = append(args, filter.End.AddDate(0, 0, 1))
	}
	return query, args
}
