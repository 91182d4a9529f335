package entity

import (
	"time"
)

// Plate is one completed print job. Cost and profit are derived at read
// time from grams/time and the referenced material, never stored; only
// the selling price is persisted.
type Plate struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ProjectID  uint      `json:"project_id" gorm:"not null;index"`
	MaterialID uint      `json:"material_id" gorm:"not null;index"`
	GramsUsed  float64   `json:"grams_used" gorm:"not null"`
	PrintTime  float64   `json:"print_time" gorm:"not null;default:0"`
	PriceSold  float64   `json:"price_sold" gorm:"not null"`
	Date       time.Time `json:"date" gorm:"index"`

	Project  *Project  `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Material *Material `json:"material,omitempty" gorm:"foreignKey:MaterialID"`
}

func (Plate) TableName() string {
	return "plates"
}
