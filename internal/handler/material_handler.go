package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/printlab/printerm/internal/service"
)

type MaterialHandler struct {
	service *service.MaterialService
}

func NewMaterialHandler(service *service.MaterialService) *MaterialHandler {
	return &MaterialHandler{service: service}
}

func (h *MaterialHandler) List(c *gin.Context) {
	materials, err := h.service.List(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, materials)
}

func (h *MaterialHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	material, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, material)
}

// Alerts lists materials running low on stock.
func (h *MaterialHandler) Alerts(c *gin.Context) {
	materials, err := h.service.Alerts(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, materials)
}

func (h *MaterialHandler) Create(c *gin.Context) {
	var req service.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	material, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		Error(c, err)
		return
	}
	Created(c, material)
}

func (h *MaterialHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req service.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	material, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, material)
}

func (h *MaterialHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		Error(c, err)
		return
	}
	Success(c, nil)
}
