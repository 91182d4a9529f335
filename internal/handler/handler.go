package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/printlab/printerm/internal/repository"
	"github.com/printlab/printerm/internal/service"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers for route registration.
type Handlers struct {
	User     *UserHandler
	Material *MaterialHandler
	Project  *ProjectHandler
	Plate    *PlateHandler
	Settings *SettingsHandler
	Stats    *StatsHandler
	Report   *ReportHandler
}

func NewHandlers(services *service.Services, logger *zap.Logger) *Handlers {
	return &Handlers{
		User:     NewUserHandler(services.User),
		Material: NewMaterialHandler(services.Material),
		Project:  NewProjectHandler(services.Project),
		Plate:    NewPlateHandler(services.Plate),
		Settings: NewSettingsHandler(services.Settings),
		Stats:    NewStatsHandler(services.Stats),
		Report:   NewReportHandler(services.Report, logger),
	}
}

// Response is the uniform JSON envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "ok", Data: data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Code: 0, Message: "created", Data: data})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{Code: http.StatusBadRequest, Message: message})
}

func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, Response{Code: http.StatusNotFound, Message: message})
}

func InternalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, Response{Code: http.StatusInternalServerError, Message: err.Error()})
}

// Error maps service errors onto HTTP status codes.
func Error(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, service.ErrValidation):
		BadRequest(c, err.Error())
	default:
		InternalError(c, err)
	}
}
