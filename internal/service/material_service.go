package service

import (
	"context"
	"fmt"

	"github.com/printlab/printerm/internal/entity"
	"github.com/printlab/printerm/internal/repository"
)

type MaterialService struct {
	repo *repository.MaterialRepository
}

func NewMaterialService(repo *repository.MaterialRepository) *MaterialService {
	return &MaterialService{repo: repo}
}

func (s *MaterialService) List(ctx context.Context) ([]entity.Material, error) {
	return s.repo.List(ctx)
}

func (s *MaterialService) Get(ctx context.Context, id uint) (*entity.Material, error) {
	return s.repo.FindByID(ctx, id)
}

// Alerts lists materials below the low-stock threshold.
func (s *MaterialService) Alerts(ctx context.Context) ([]entity.Material, error) {
	return s.repo.FindLowStock(ctx, entity.LowStockThresholdGrams)
}

type CreateMaterialRequest struct {
	Name              string  `json:"name" binding:"required"`
	Color             string  `json:"color"`
	CostPerGram       float64 `json:"cost_per_gram" binding:"min=0"`
	QuantityRemaining float64 `json:"quantity_remaining" binding:"min=0"`
}

func (s *MaterialService) Create(ctx context.Context, req *CreateMaterialRequest) (*entity.Material, error) {
	if req.CostPerGram < 0 {
		return nil, fmt.Errorf("%w: cost_per_gram must not be negative", ErrValidation)
	}
	material := &entity.Material{
		Name:              req.Name,
		Color:             req.Color,
		CostPerGram:       req.CostPerGram,
		QuantityRemaining: req.QuantityRemaining,
	}
	if err := s.repo.Create(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

type UpdateMaterialRequest struct {
	Name              string  `json:"name" binding:"required"`
	Color             string  `json:"color"`
	CostPerGram       float64 `json:"cost_per_gram" binding:"min=0"`
	QuantityRemaining float64 `json:"quantity_remaining" binding:"min=0"`
}

func (s *MaterialService) Update(ctx context.Context, id uint, req *UpdateMaterialRequest) (*entity.Material, error) {
	material, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	material.Name = req.Name
	material.Color = req.Color
	material.CostPerGram = req.CostPerGram
	material.QuantityRemaining = req.QuantityRemaining
	if err := s.repo.Update(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

// Delete removes a material. Plates referencing it keep their rows; cost
// derivation for those plates then joins against a missing material and
// reports zero material cost.
func (s *MaterialService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
