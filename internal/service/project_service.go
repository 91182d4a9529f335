package service

import (
	"context"
	"fmt"

	"github.com/printlab/printerm/internal/entity"
	"github.com/printlab/printerm/internal/pricing"
	"github.com/printlab/printerm/internal/repository"
	"gorm.io/gorm"
)

type ProjectService struct {
	repo *repository.ProjectRepository
	db   *gorm.DB
}

func NewProjectService(repo *repository.ProjectRepository, db *gorm.DB) *ProjectService {
	return &ProjectService{repo: repo, db: db}
}

func (s *ProjectService) List(ctx context.Context, userID *uint) ([]entity.Project, error) {
	return s.repo.List(ctx, userID)
}

func (s *ProjectService) Get(ctx context.Context, id uint) (*entity.Project, error) {
	return s.repo.FindByID(ctx, id)
}

// GetPricing returns just the project's pricing override bundle.
func (s *ProjectService) GetPricing(ctx context.Context, id uint) (*repository.PricingOverride, error) {
	return s.repo.GetPricing(ctx, id)
}

type CreateProjectRequest struct {
	UserID           uint     `json:"user_id" binding:"required"`
	Name             string   `json:"name" binding:"required"`
	Description      string   `json:"description"`
	PricingMethod    string   `json:"pricing_method"`
	MarkupPercentage *int     `json:"markup_percentage"`
	PricePerGram     *float64 `json:"price_per_gram"`
	PricePerHour     *float64 `json:"price_per_hour"`
}

func (s *ProjectService) Create(ctx context.Context, req *CreateProjectRequest) (*entity.Project, error) {
	project := &entity.Project{
		UserID:           req.UserID,
		Name:             req.Name,
		Description:      req.Description,
		PricingMethod:    pricing.MethodNone,
		MarkupPercentage: entity.DefaultMarkupPercentage,
		PricePerGram:     entity.DefaultPricePerGram,
		PricePerHour:     entity.DefaultPricePerHour,
	}
	if req.PricingMethod != "" {
		if !validPricingMethod(req.PricingMethod) {
			return nil, fmt.Errorf("%w: unknown pricing_method %q", ErrValidation, req.PricingMethod)
		}
		project.PricingMethod = req.PricingMethod
	}
	if req.MarkupPercentage != nil {
		project.MarkupPercentage = *req.MarkupPercentage
	}
	if req.PricePerGram != nil {
		project.PricePerGram = *req.PricePerGram
	}
	if req.PricePerHour != nil {
		project.PricePerHour = *req.PricePerHour
	}
	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

type UpdateProjectRequest struct {
	UserID           uint     `json:"user_id" binding:"required"`
	Name             string   `json:"name" binding:"required"`
	Description      string   `json:"description"`
	PricingMethod    string   `json:"pricing_method"`
	MarkupPercentage *int     `json:"markup_percentage"`
	PricePerGram     *float64 `json:"price_per_gram"`
	PricePerHour     *float64 `json:"price_per_hour"`
}

func (s *ProjectService) Update(ctx context.Context, id uint, req *UpdateProjectRequest) (*entity.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	project.UserID = req.UserID
	project.Name = req.Name
	project.Description = req.Description
	if req.PricingMethod != "" {
		if !validPricingMethod(req.PricingMethod) {
			return nil, fmt.Errorf("%w: unknown pricing_method %q", ErrValidation, req.PricingMethod)
		}
		project.PricingMethod = req.PricingMethod
	}
	if req.MarkupPercentage != nil {
		project.MarkupPercentage = *req.MarkupPercentage
	}
	if req.PricePerGram != nil {
		project.PricePerGram = *req.PricePerGram
	}
	if req.PricePerHour != nil {
		project.PricePerHour = *req.PricePerHour
	}
	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete cascades to the project's plates and first returns their grams
// to the corresponding materials, all in one transaction.
func (s *ProjectService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := restoreProjectMaterials(tx, id); err != nil {
			return fmt.Errorf("restore materials: %w", err)
		}
		if err := tx.Where("project_id = ?", id).Delete(&entity.Plate{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Project{}, id).Error
	})
}

// restoreProjectMaterials credits back, per material, the grams consumed
// by the project's plates.
func restoreProjectMaterials(tx *gorm.DB, projectID uint) error {
	return tx.Exec(`
		UPDATE materials
		SET quantity_remaining = quantity_remaining + (
			SELECT COALESCE(SUM(grams_used), 0)
			FROM plates
			WHERE plates.material_id = materials.id AND plates.project_id = ?
		)
		WHERE id IN (SELECT material_id FROM plates WHERE project_id = ?)`,
		projectID, projectID).Error
}

func validPricingMethod(m string) bool {
	switch m {
	case pricing.MethodNone, pricing.MethodMarkup, pricing.MethodFixedGram, pricing.MethodFixedHour:
		return true
	}
	return false
}
