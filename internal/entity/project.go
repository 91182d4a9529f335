package entity

// Project groups plates under a user. The four pricing fields are the
// project's pricing override bundle: they always hold values (defaulted at
// creation) and replace the global pricing settings wholesale for any plate
// in the project. Cost model and time rate are never overridden per project.
type Project struct {
	ID               uint    `json:"id" gorm:"primaryKey"`
	UserID           uint    `json:"user_id" gorm:"not null;index"`
	Name             string  `json:"name" gorm:"size:128;not null"`
	Description      string  `json:"description" gorm:"type:text"`
	PricingMethod    string  `json:"pricing_method" gorm:"size:16;not null;default:none"`
	MarkupPercentage int     `json:"markup_percentage" gorm:"not null;default:50"`
	PricePerGram     float64 `json:"price_per_gram" gorm:"not null;default:0.10"`
	PricePerHour     float64 `json:"price_per_hour" gorm:"not null;default:20.00"`

	User   *User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Plates []Plate `json:"plates,omitempty" gorm:"foreignKey:ProjectID"`
}

func (Project) TableName() string {
	return "projects"
}

// Project pricing defaults applied at creation.
const (
	DefaultMarkupPercentage = 50
	DefaultPricePerGram     = 0.10
	DefaultPricePerHour     = 20.00
)
