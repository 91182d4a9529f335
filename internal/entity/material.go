package entity

// Material is a filament spool (or resin bottle) tracked by weight.
// QuantityRemaining is adjusted on every plate write and may go negative;
// a negative value means more material was logged than the spool held.
type Material struct {
	ID                uint    `json:"id" gorm:"primaryKey"`
	Name              string  `json:"name" gorm:"size:128;not null"`
	Color             string  `json:"color" gorm:"size:64"`
	CostPerGram       float64 `json:"cost_per_gram" gorm:"not null"`
	QuantityRemaining float64 `json:"quantity_remaining" gorm:"not null"`
}

func (Material) TableName() string {
	return "materials"
}

// LowStockThresholdGrams is the remaining quantity below which a material
// shows up in the low-stock alert list.
const LowStockThresholdGrams = 100.0
