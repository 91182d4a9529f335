package repository

import (
	"context"
	"errors"
	"time"

	"github.com/printlab/printerm/internal/entity"
	"gorm.io/gorm"
)

// PlateRepository persists plates and serves the joined rows for listings
// and reports.
type PlateRepository struct {
	db *gorm.DB
}

func NewPlateRepository(db *gorm.DB) *PlateRepository {
	return &PlateRepository{db: db}
}

// PlateRow is one plate joined with its material, project and owner.
// Cost/profit are derived by the caller, never here.
type PlateRow struct {
	ID            uint      `json:"id"`
	ProjectID     uint      `json:"project_id"`
	MaterialID    uint      `json:"material_id"`
	GramsUsed     float64   `json:"grams_used"`
	PrintTime     float64   `json:"print_time"`
	PriceSold     float64   `json:"price_sold"`
	Date          time.Time `json:"date"`
	ProjectName   string    `json:"project_name"`
	UserName      string    `json:"user_name"`
	MaterialName  string    `json:"material_name"`
	MaterialColor string    `json:"color"`
	CostPerGram   float64   `json:"cost_per_gram"`
}

// ListFilter narrows a plate listing. End is inclusive of the whole end day.
type ListFilter struct {
	ProjectID *uint
	UserID    *uint
	Start     *time.Time
	End       *time.Time
}

// ListRows returns plates with their joined names, oldest first.
func (r *PlateRepository) ListRows(ctx context.Context, filter ListFilter) ([]PlateRow, error) {
	query := r.db.WithContext(ctx).
		Table("plates").
		Select(`plates.id, plates.project_id, plates.material_id, plates.grams_used,
			plates.print_time, plates.price_sold, plates.date,
			projects.name AS project_name, users.name AS user_name,
			COALESCE(materials.name, '') AS material_name,
			COALESCE(materials.color, '') AS material_color,
			COALESCE(materials.cost_per_gram, 0) AS cost_per_gram`).
		Joins("JOIN projects ON projects.id = plates.project_id").
		Joins("JOIN users ON users.id = projects.user_id").
		Joins("LEFT JOIN materials ON materials.id = plates.material_id").
		Order("plates.id ASC")

	if filter.ProjectID != nil {
		query = query.Where("plates.project_id = ?", *filter.ProjectID)
	}
	if filter.UserID != nil {
		query = query.Where("projects.user_id = ?", *filter.UserID)
	}
	if filter.Start != nil {
		query = query.Where("plates.date >= ?", *filter.Start)
	}
	if filter.End != nil {
		query = query.Where("plates.date < ?", filter.End.AddDate(0, 0, 1))
	}

	var rows []PlateRow
	err := query.Scan(&rows).Error
	return rows, err
}

func (r *PlateRepository) FindByID(ctx context.Context, id uint) (*entity.Plate, error) {
	var plate entity.Plate
	err := r.db.WithContext(ctx).First(&plate, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &plate, nil
}
