package service

import (
	"errors"

	"github.com/printlab/printerm/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrValidation marks caller errors that should surface as bad requests.
var ErrValidation = errors.New("validation failed")

// Services is the service collection.
type Services struct {
	User     *UserService
	Material *MaterialService
	Project  *ProjectService
	Plate    *PlateService
	Settings *SettingsService
	Stats    *StatsService
	Report   *ReportService
}

// NewServices wires the service collection.
func NewServices(repos *repository.Repositories, db *gorm.DB, logger *zap.Logger) *Services {
	settings := NewSettingsService(repos.Setting, repos.Project, logger)
	plate := NewPlateService(repos.Plate, repos.Material, settings, db, logger)
	project := NewProjectService(repos.Project, db)
	stats := NewStatsService(db, settings)
	report := NewReportService(repos.Plate, plate)

	return &Services{
		User:     NewUserService(repos.User, db),
		Material: NewMaterialService(repos.Material),
		Project:  project,
		Plate:    plate,
		Settings: settings,
		Stats:    stats,
		Report:   report,
	}
}
