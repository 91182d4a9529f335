package repository

import (
	"context"
	"errors"

	"github.com/printlab/printerm/internal/entity"
	"gorm.io/gorm"
)

// ProjectRepository persists projects and their pricing overrides.
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) FindByID(ctx context.Context, id uint) (*entity.Project, error) {
	var project entity.Project
	err := r.db.WithContext(ctx).Preload("User").First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

// List returns all projects, optionally filtered to one user.
func (r *ProjectRepository) List(ctx context.Context, userID *uint) ([]entity.Project, error) {
	var projects []entity.Project
	query := r.db.WithContext(ctx).Preload("User").Order("id ASC")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	err := query.Find(&projects).Error
	return projects, err
}

// PricingOverride is a project's pricing bundle. It replaces the global
// pricing settings wholesale for plates in the project.
type PricingOverride struct {
	PricingMethod    string  `json:"pricing_method"`
	MarkupPercentage int     `json:"markup_percentage"`
	PricePerGram     float64 `json:"price_per_gram"`
	PricePerHour     float64 `json:"price_per_hour"`
}

// GetPricing fetches only the pricing bundle of a project.
func (r *ProjectRepository) GetPricing(ctx context.Context, id uint) (*PricingOverride, error) {
	var override PricingOverride
	err := r.db.WithContext(ctx).
		Model(&entity.Project{}).
		Select("pricing_method", "markup_percentage", "price_per_gram", "price_per_hour").
		Where("id = ?", id).
		Take(&override).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &override, nil
}

func (r *ProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *ProjectRepository) Update(ctx context.Context, project *entity.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}
