package database

import (
	"fmt"
	"time"

	"github.com/printlab/printerm/internal/entity"
	"gorm.io/gorm"
)

type seedStep struct {
	Name string
	Run  func(db *gorm.DB) error
}

// Seed populates an empty database with starter data. Each step checks
// before inserting, so re-running on an existing database is a no-op.
// Steps run in order and stop at the first failure.
func Seed(db *gorm.DB, databaseName string) error {
	steps := []seedStep{
		{"users", seedUsers},
		{"materials", seedMaterials},
		{"projects", seedProjects},
		{"plates", seedPlates},
		{"settings", seedSettings},
		{"database name", func(db *gorm.DB) error {
			return db.Save(&entity.Setting{Key: entity.SettingKeyDatabaseName, Value: databaseName}).Error
		}},
	}

	for _, step := range steps {
		if err := step.Run(db); err != nil {
			return fmt.Errorf("seed %s: %w", step.Name, err)
		}
	}
	return nil
}

func seedUsers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create([]*entity.User{
		{Name: "Alice Smith", Email: "alice@example.com"},
		{Name: "Bob Jones", Email: "bob@example.com"},
	}).Error
}

func seedMaterials(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Material{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create([]*entity.Material{
		{Name: "PLA", Color: "White", CostPerGram: 0.05, QuantityRemaining: 1000},
		{Name: "PETG", Color: "Black", CostPerGram: 0.06, QuantityRemaining: 800},
		{Name: "ABS", Color: "Red", CostPerGram: 0.07, QuantityRemaining: 500},
	}).Error
}

func seedProjects(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Project{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create([]*entity.Project{
		{
			UserID:           1,
			Name:             "RC Car Project",
			Description:      "Multiple body parts for a remote control car",
			PricingMethod:    "none",
			MarkupPercentage: entity.DefaultMarkupPercentage,
			PricePerGram:     entity.DefaultPricePerGram,
			PricePerHour:     entity.DefaultPricePerHour,
		},
		{
			UserID:           2,
			Name:             "Art Sculptures",
			Description:      "Custom figurines and geometric designs",
			PricingMethod:    "none",
			MarkupPercentage: entity.DefaultMarkupPercentage,
			PricePerGram:     entity.DefaultPricePerGram,
			PricePerHour:     entity.DefaultPricePerHour,
		},
	}).Error
}

func seedPlates(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Plate{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	now := time.Now()
	return db.Create([]*entity.Plate{
		{ProjectID: 1, MaterialID: 1, GramsUsed: 120, PrintTime: 2.5, PriceSold: 20.00, Date: now},
		{ProjectID: 1, MaterialID: 2, GramsUsed: 150, PrintTime: 3.2, PriceSold: 25.00, Date: now},
		{ProjectID: 2, MaterialID: 3, GramsUsed: 100, PrintTime: 1.8, PriceSold: 30.00, Date: now},
	}).Error
}

func seedSettings(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Setting{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create([]*entity.Setting{
		{Key: entity.SettingKeyCostModel, Value: "weight"},
		{Key: entity.SettingKeyTimeCostRate, Value: "10.00"},
	}).Error
}
