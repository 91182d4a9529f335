package repository

import (
	"context"
	"errors"

	"github.com/printlab/printerm/internal/entity"
	"gorm.io/gorm"
)

// MaterialRepository persists materials and applies inventory deltas.
type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) FindByID(ctx context.Context, id uint) (*entity.Material, error) {
	var material entity.Material
	err := r.db.WithContext(ctx).First(&material, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &material, nil
}

func (r *MaterialRepository) List(ctx context.Context) ([]entity.Material, error) {
	var materials []entity.Material
	err := r.db.WithContext(ctx).Order("id ASC").Find(&materials).Error
	return materials, err
}

// FindLowStock lists materials whose remaining quantity dropped below the
// given threshold, most depleted first.
func (r *MaterialRepository) FindLowStock(ctx context.Context, threshold float64) ([]entity.Material, error) {
	var materials []entity.Material
	err := r.db.WithContext(ctx).
		Where("quantity_remaining < ?", threshold).
		Order("quantity_remaining ASC").
		Find(&materials).Error
	return materials, err
}

func (r *MaterialRepository) Create(ctx context.Context, material *entity.Material) error {
	return r.db.WithContext(ctx).Create(material).Error
}

func (r *MaterialRepository) Update(ctx context.Context, material *entity.Material) error {
	return r.db.WithContext(ctx).Save(material).Error
}

func (r *MaterialRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Material{}, id).Error
}

// AdjustQuantity applies a relative delta to a material's remaining
// quantity. A missing material matches zero rows and is not an error: plate
// writes must not fail because the referenced spool record was removed.
func AdjustQuantity(tx *gorm.DB, materialID uint, delta float64) error {
	return tx.Model(&entity.Material{}).
		Where("id = ?", materialID).
		UpdateColumn("quantity_remaining", gorm.Expr("quantity_remaining + ?", delta)).Error
}
