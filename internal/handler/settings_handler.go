package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/printlab/printerm/internal/service"
)

type SettingsHandler struct {
	service *service.SettingsService
}

func NewSettingsHandler(service *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// List returns every stored setting as a key/value map.
func (h *SettingsHandler) List(c *gin.Context) {
	settings, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, settings)
}

type setSettingRequest struct {
	Value string `json:"value"`
}

// Set upserts a single setting by key.
func (h *SettingsHandler) Set(c *gin.Context) {
	key := c.Param("key")
	var req setSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := h.service.Set(c.Request.Context(), key, req.Value); err != nil {
		Error(c, err)
		return
	}
	Success(c, gin.H{"key": key, "value": req.Value})
}
