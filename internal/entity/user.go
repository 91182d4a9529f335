package entity

// User owns projects. Not a login identity; there is no account system.
type User struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"size:128;not null"`
	Email string `json:"email" gorm:"size:128"`

	Projects []Project `json:"projects,omitempty" gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}
