package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/printlab/printerm/internal/entity"
	"github.com/printlab/printerm/internal/pricing"
	"github.com/printlab/printerm/internal/repository"
	"go.uber.org/zap"
)

// SettingsService reads and mutates the global app settings and resolves
// them into pricing-engine inputs. Settings are read fresh on every
// resolution, never cached, so a settings change is visible to the next
// computation immediately.
type SettingsService struct {
	repo        *repository.SettingRepository
	projectRepo *repository.ProjectRepository
	logger      *zap.Logger
}

func NewSettingsService(repo *repository.SettingRepository, projectRepo *repository.ProjectRepository, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		repo:        repo,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// GetAll returns the raw settings map.
func (s *SettingsService) GetAll(ctx context.Context) (map[string]string, error) {
	return s.repo.GetAll(ctx)
}

// Set validates and upserts one setting. Unknown keys are stored as-is;
// the table also carries non-pricing entries such as the database name.
func (s *SettingsService) Set(ctx context.Context, key, value string) error {
	switch key {
	case entity.SettingKeyCostModel:
		if value != pricing.ModelWeight && value != pricing.ModelMax {
			return fmt.Errorf("%w: cost_model must be weight or max", ErrValidation)
		}
	case entity.SettingKeyPricingMethod:
		switch value {
		case pricing.MethodNone, pricing.MethodMarkup, pricing.MethodFixedGram, pricing.MethodFixedHour:
		default:
			return fmt.Errorf("%w: unknown pricing_method %q", ErrValidation, value)
		}
	case entity.SettingKeyTimeCostRate, entity.SettingKeyPricePerGram, entity.SettingKeyPricePerHour:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil || v < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", ErrValidation, key)
		}
	case entity.SettingKeyMarkupPercentage:
		v, err := strconv.Atoi(value)
		if err != nil || v < 0 {
			return fmt.Errorf("%w: markup_percentage must be a non-negative integer", ErrValidation)
		}
	}
	return s.repo.Set(ctx, key, value)
}

// Resolve loads the current global cost model and pricing parameters,
// falling back to defaults for absent or unparseable values. Enum values
// are passed through untouched; the pricing engine degrades unrecognized
// ones safely.
func (s *SettingsService) Resolve(ctx context.Context) (pricing.CostModel, pricing.Params, error) {
	settings, err := s.repo.GetAll(ctx)
	if err != nil {
		return pricing.CostModel{}, pricing.Params{}, fmt.Errorf("load settings: %w", err)
	}

	cm := pricing.DefaultCostModel()
	if v, ok := settings[entity.SettingKeyCostModel]; ok && v != "" {
		cm.Model = v
	}
	cm.TimeCostRate = parseFloat(settings[entity.SettingKeyTimeCostRate], cm.TimeCostRate)

	p := pricing.DefaultParams()
	if v, ok := settings[entity.SettingKeyPricingMethod]; ok && v != "" {
		p.Method = v
	}
	p.MarkupPercentage = parseInt(settings[entity.SettingKeyMarkupPercentage], p.MarkupPercentage)
	p.PricePerGram = parseFloat(settings[entity.SettingKeyPricePerGram], p.PricePerGram)
	p.PricePerHour = parseFloat(settings[entity.SettingKeyPricePerHour], p.PricePerHour)

	return cm, p, nil
}

// ResolveForProject applies a project's pricing override on top of the
// resolved globals. The override replaces all four pricing parameters
// wholesale; cost model and time rate always stay global. A failed
// project lookup falls back to the global parameters silently.
func (s *SettingsService) ResolveForProject(ctx context.Context, projectID uint) (pricing.CostModel, pricing.Params, error) {
	cm, p, err := s.Resolve(ctx)
	if err != nil {
		return cm, p, err
	}

	override, err := s.projectRepo.GetPricing(ctx, projectID)
	if err != nil {
		s.logger.Debug("project pricing unavailable, using global settings",
			zap.Uint("project_id", projectID), zap.Error(err))
		return cm, p, nil
	}

	p.Method = override.PricingMethod
	p.MarkupPercentage = override.MarkupPercentage
	p.PricePerGram = override.PricePerGram
	p.PricePerHour = override.PricePerHour
	return cm, p, nil
}

func parseFloat(s string, fallback float64) float64 {
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}

func parseInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}
