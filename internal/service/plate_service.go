package service

import (
	"context"
	"fmt"
	"time"

	"github.com/printlab/printerm/internal/entity"
	"github.com/printlab/printerm/internal/pricing"
	"github.com/printlab/printerm/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PlateService owns plate writes and keeps material inventory consistent
// with them: every create/update/delete adjusts the referenced material's
// remaining quantity inside the same transaction as the plate write.
type PlateService struct {
	repo         *repository.PlateRepository
	materialRepo *repository.MaterialRepository
	settings     *SettingsService
	db           *gorm.DB
	logger       *zap.Logger
}

func NewPlateService(repo *repository.PlateRepository, materialRepo *repository.MaterialRepository, settings *SettingsService, db *gorm.DB, logger *zap.Logger) *PlateService {
	return &PlateService{
		repo:         repo,
		materialRepo: materialRepo,
		settings:     settings,
		db:           db,
		logger:       logger,
	}
}

// PlateView is a plate row with its derived cost figures.
type PlateView struct {
	repository.PlateRow
	MaterialCost float64 `json:"material_cost"`
	TimeCost     float64 `json:"time_cost"`
	Cost         float64 `json:"cost"`
	Profit       float64 `json:"profit"`
}

// List returns plates with cost/profit derived under the current global
// cost model. The same Costs call backs every listing, preview and report
// row, so the figures never drift between views.
func (s *PlateService) List(ctx context.Context, filter repository.ListFilter) ([]PlateView, error) {
	cm, _, err := s.settings.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListRows(ctx, filter)
	if err != nil {
		return nil, err
	}

	views := make([]PlateView, 0, len(rows))
	for _, row := range rows {
		views = append(views, derivePlateView(row, cm))
	}
	return views, nil
}

func derivePlateView(row repository.PlateRow, cm pricing.CostModel) PlateView {
	materialCost, timeCost, totalCost := pricing.Costs(row.GramsUsed, row.PrintTime, row.CostPerGram, cm)
	return PlateView{
		PlateRow:     row,
		MaterialCost: materialCost,
		TimeCost:     timeCost,
		Cost:         totalCost,
		Profit:       row.PriceSold - totalCost,
	}
}

func (s *PlateService) Get(ctx context.Context, id uint) (*entity.Plate, error) {
	return s.repo.FindByID(ctx, id)
}

// QuoteRequest asks for a price preview without persisting anything.
type QuoteRequest struct {
	ProjectID  uint    `json:"project_id" binding:"required"`
	MaterialID uint    `json:"material_id" binding:"required"`
	GramsUsed  float64 `json:"grams_used" binding:"min=0"`
	PrintTime  float64 `json:"print_time" binding:"min=0"`
}

// Quote resolves settings plus any project override and runs the pricing
// engine. This is the single computation behind the live preview, single
// save and batch save.
func (s *PlateService) Quote(ctx context.Context, req *QuoteRequest) (*pricing.Breakdown, error) {
	material, err := s.materialRepo.FindByID(ctx, req.MaterialID)
	if err != nil {
		return nil, err
	}

	cm, params, err := s.settings.ResolveForProject(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	breakdown := pricing.Quote(req.GramsUsed, req.PrintTime, material.CostPerGram, params, cm)
	return &breakdown, nil
}

// CreatePlateRequest creates one plate. A nil PriceSold means "use the
// computed selling price"; an explicit value (including 0) is kept as the
// operator's manual entry.
type CreatePlateRequest struct {
	ProjectID  uint       `json:"project_id" binding:"required"`
	MaterialID uint       `json:"material_id" binding:"required"`
	GramsUsed  float64    `json:"grams_used" binding:"required,gt=0"`
	PrintTime  float64    `json:"print_time" binding:"min=0"`
	PriceSold  *float64   `json:"price_sold"`
	Date       *time.Time `json:"date"`
}

func (s *PlateService) Create(ctx context.Context, req *CreatePlateRequest) (*entity.Plate, error) {
	if req.GramsUsed <= 0 {
		return nil, fmt.Errorf("%w: grams_used must be positive", ErrValidation)
	}

	priceSold, err := s.resolvePrice(ctx, req.ProjectID, req.MaterialID, req.GramsUsed, req.PrintTime, req.PriceSold)
	if err != nil {
		return nil, err
	}

	plate := &entity.Plate{
		ProjectID:  req.ProjectID,
		MaterialID: req.MaterialID,
		GramsUsed:  req.GramsUsed,
		PrintTime:  req.PrintTime,
		PriceSold:  priceSold,
		Date:       time.Now(),
	}
	if req.Date != nil {
		plate.Date = *req.Date
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.AdjustQuantity(tx, plate.MaterialID, -plate.GramsUsed); err != nil {
			return fmt.Errorf("deduct material: %w", err)
		}
		return tx.Create(plate).Error
	})
	if err != nil {
		return nil, err
	}
	return plate, nil
}

// UpdatePlateRequest replaces a plate's fields. PriceSold semantics match
// CreatePlateRequest.
type UpdatePlateRequest struct {
	ProjectID  uint       `json:"project_id" binding:"required"`
	MaterialID uint       `json:"material_id" binding:"required"`
	GramsUsed  float64    `json:"grams_used" binding:"required,gt=0"`
	PrintTime  float64    `json:"print_time" binding:"min=0"`
	PriceSold  *float64   `json:"price_sold"`
	Date       *time.Time `json:"date"`
}

// Update edits a plate and rebalances inventory. Same material: apply the
// grams delta. Material changed: restore the old grams to the old material
// and deduct the new grams from the new one. A missing material record
// skips its adjustment rather than failing the update; that asymmetry is
// long-standing behavior the data depends on.
func (s *PlateService) Update(ctx context.Context, id uint, req *UpdatePlateRequest) (*entity.Plate, error) {
	if req.GramsUsed <= 0 {
		return nil, fmt.Errorf("%w: grams_used must be positive", ErrValidation)
	}

	original, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	priceSold, err := s.resolvePrice(ctx, req.ProjectID, req.MaterialID, req.GramsUsed, req.PrintTime, req.PriceSold)
	if err != nil {
		return nil, err
	}

	plate := &entity.Plate{
		ID:         original.ID,
		ProjectID:  req.ProjectID,
		MaterialID: req.MaterialID,
		GramsUsed:  req.GramsUsed,
		PrintTime:  req.PrintTime,
		PriceSold:  priceSold,
		Date:       original.Date,
	}
	if req.Date != nil {
		plate.Date = *req.Date
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if original.MaterialID == plate.MaterialID {
			if diff := original.GramsUsed - plate.GramsUsed; diff != 0 {
				if err := repository.AdjustQuantity(tx, plate.MaterialID, diff); err != nil {
					return fmt.Errorf("rebalance material: %w", err)
				}
			}
		} else {
			if err := repository.AdjustQuantity(tx, original.MaterialID, original.GramsUsed); err != nil {
				return fmt.Errorf("restore old material: %w", err)
			}
			if err := repository.AdjustQuantity(tx, plate.MaterialID, -plate.GramsUsed); err != nil {
				return fmt.Errorf("deduct new material: %w", err)
			}
		}
		return tx.Save(plate).Error
	})
	if err != nil {
		return nil, err
	}
	return plate, nil
}

// Delete removes a plate and returns its grams to the material.
func (s *PlateService) Delete(ctx context.Context, id uint) error {
	plate, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.AdjustQuantity(tx, plate.MaterialID, plate.GramsUsed); err != nil {
			return fmt.Errorf("restore material: %w", err)
		}
		return tx.Delete(&entity.Plate{}, id).Error
	})
}

// BatchEntry is one plate in a batch submission.
type BatchEntry struct {
	GramsUsed float64    `json:"grams_used" binding:"required,gt=0"`
	PrintTime float64    `json:"print_time" binding:"min=0"`
	Date      *time.Time `json:"date"`
}

// BatchCreateRequest records several plates of the same project and
// material in one go; prices are always computed server-side.
type BatchCreateRequest struct {
	ProjectID  uint         `json:"project_id" binding:"required"`
	MaterialID uint         `json:"material_id" binding:"required"`
	Entries    []BatchEntry `json:"entries" binding:"required,min=1,dive"`
}

// BatchCreate prices and persists every entry with one settings
// resolution, so all plates of a batch see the same configuration even if
// settings change mid-save.
func (s *PlateService) BatchCreate(ctx context.Context, req *BatchCreateRequest) ([]entity.Plate, error) {
	material, err := s.materialRepo.FindByID(ctx, req.MaterialID)
	if err != nil {
		return nil, err
	}

	cm, params, err := s.settings.ResolveForProject(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	plates := make([]entity.Plate, 0, len(req.Entries))
	for i, e := range req.Entries {
		if e.GramsUsed <= 0 {
			return nil, fmt.Errorf("%w: entry %d: grams_used must be positive", ErrValidation, i+1)
		}
		breakdown := pricing.Quote(e.GramsUsed, e.PrintTime, material.CostPerGram, params, cm)
		plate := entity.Plate{
			ProjectID:  req.ProjectID,
			MaterialID: req.MaterialID,
			GramsUsed:  e.GramsUsed,
			PrintTime:  e.PrintTime,
			PriceSold:  breakdown.SellingPrice,
			Date:       now,
		}
		if e.Date != nil {
			plate.Date = *e.Date
		}
		plates = append(plates, plate)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range plates {
			if err := repository.AdjustQuantity(tx, plates[i].MaterialID, -plates[i].GramsUsed); err != nil {
				return fmt.Errorf("deduct material: %w", err)
			}
			if err := tx.Create(&plates[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("batch plates recorded",
		zap.Uint("project_id", req.ProjectID),
		zap.Uint("material_id", req.MaterialID),
		zap.Int("count", len(plates)))
	return plates, nil
}

// resolvePrice picks the operator-supplied price when present, otherwise
// computes the selling price exactly as the preview does.
func (s *PlateService) resolvePrice(ctx context.Context, projectID, materialID uint, grams, printTime float64, manual *float64) (float64, error) {
	if manual != nil {
		return *manual, nil
	}
	breakdown, err := s.Quote(ctx, &QuoteRequest{
		ProjectID:  projectID,
		MaterialID: materialID,
		GramsUsed:  grams,
		PrintTime:  printTime,
	})
	if err != nil {
		return 0, err
	}
	return breakdown.SellingPrice, nil
}
