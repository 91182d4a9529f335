package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// Repositories is the repository collection.
type Repositories struct {
	User     *UserRepository
	Material *MaterialRepository
	Project  *ProjectRepository
	Plate    *PlateRepository
	Setting  *SettingRepository
}

// NewRepositories creates the repository collection.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:     NewUserRepository(db),
		Material: NewMaterialRepository(db),
		Project:  NewProjectRepository(db),
		Plate:    NewPlateRepository(db),
		Setting:  NewSettingRepository(db),
	}
}
