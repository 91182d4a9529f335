package database

import (
	"fmt"
	"time"

	"github.com/printlab/printerm/internal/entity"
	"gorm.io/gorm"
)

// schemaMigration records an applied migration version.
type schemaMigration struct {
	Version   int       `gorm:"primaryKey"`
	Name      string    `gorm:"size:128;not null"`
	AppliedAt time.Time `gorm:"autoCreateTime"`
}

func (schemaMigration) TableName() string {
	return "schema_migrations"
}

type migration struct {
	Version int
	Name    string
	SQL     []string
}

// Explicit versioned steps that AutoMigrate cannot express, applied once
// each in order. Append only; never edit an applied version.
var migrations = []migration{
	{
		Version: 1,
		Name:    "plate and project indexes",
		SQL: []string{
			"CREATE INDEX IF NOT EXISTS idx_plates_project_id ON plates(project_id)",
			"CREATE INDEX IF NOT EXISTS idx_plates_material_id ON plates(material_id)",
			"CREATE INDEX IF NOT EXISTS idx_plates_date ON plates(date)",
			"CREATE INDEX IF NOT EXISTS idx_projects_user_id ON projects(user_id)",
		},
	},
	{
		Version: 2,
		Name:    "backfill project pricing defaults",
		SQL: []string{
			"UPDATE projects SET pricing_method = 'none' WHERE pricing_method IS NULL OR pricing_method = ''",
			"UPDATE projects SET markup_percentage = 50 WHERE markup_percentage IS NULL",
			"UPDATE projects SET price_per_gram = 0.10 WHERE price_per_gram IS NULL",
			"UPDATE projects SET price_per_hour = 20.00 WHERE price_per_hour IS NULL",
		},
	},
	{
		Version: 3,
		Name:    "backfill plate print_time",
		SQL: []string{
			"UPDATE plates SET print_time = 0 WHERE print_time IS NULL",
		},
	},
}

// Migrate brings the schema up to date: AutoMigrate for the entity tables,
// then the versioned steps above, recorded in schema_migrations.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Material{},
		&entity.Project{},
		&entity.Plate{},
		&entity.Setting{},
		&schemaMigration{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, m := range migrations {
		var count int64
		if err := db.Model(&schemaMigration{}).Where("version = ?", m.Version).Count(&count).Error; err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			for _, stmt := range m.SQL {
				if err := tx.Exec(stmt).Error; err != nil {
					return err
				}
			}
			return tx.Create(&schemaMigration{Version: m.Version, Name: m.Name}).Error
		})
		if err != nil {
			return fmt.Errorf("apply migration %d (%s): %w", m.Version, m.Name, err)
		}
	}

	return nil
}
