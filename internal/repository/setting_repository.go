package repository

import (
	"context"

	"github.com/printlab/printerm/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingRepository persists the key/value app configuration.
type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetAll returns every setting as a key -> value map.
func (r *SettingRepository) GetAll(ctx context.Context) (map[string]string, error) {
	var settings []entity.Setting
	if err := r.db.WithContext(ctx).Find(&settings).Error; err != nil {
		return nil, err
	}
	result := make(map[string]string, len(settings))
	for _, s := range settings {
		result[s.Key] = s.Value
	}
	return result, nil
}

// Set upserts one setting.
func (r *SettingRepository) Set(ctx context.Context, key, value string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&entity.Setting{Key: key, Value: value}).Error
}
