package entity

// Setting is one row of the key/value app configuration table.
type Setting struct {
	Key   string `json:"key" gorm:"primaryKey;size:64"`
	Value string `json:"value" gorm:"not null"`
}

func (Setting) TableName() string {
	return "settings"
}

// Known setting keys.
const (
	SettingKeyCostModel        = "cost_model"
	SettingKeyTimeCostRate     = "time_cost_rate"
	SettingKeyPricingMethod    = "pricing_method"
	SettingKeyMarkupPercentage = "markup_percentage"
	SettingKeyPricePerGram     = "price_per_gram"
	SettingKeyPricePerHour     = "price_per_hour"
	SettingKeyDatabaseName     = "database_name"
)
