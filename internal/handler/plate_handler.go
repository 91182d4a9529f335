package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/printlab/printerm/internal/repository"
	"github.com/printlab/printerm/internal/service"
)

type PlateHandler struct {
	service *service.PlateService
}

func NewPlateHandler(service *service.PlateService) *PlateHandler {
	return &PlateHandler{service: service}
}

func parseListFilter(c *gin.Context) (repository.ListFilter, bool) {
	var filter repository.ListFilter
	if raw := c.Query("project_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			BadRequest(c, "invalid project_id")
			return filter, false
		}
		id := uint(parsed)
		filter.ProjectID = &id
	}
	if raw := c.Query("user_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			BadRequest(c, "invalid user_id")
			return filter, false
		}
		id := uint(parsed)
		filter.UserID = &id
	}
	if raw := c.Query("start"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			BadRequest(c, "invalid start date, expected YYYY-MM-DD")
			return filter, false
		}
		filter.Start = &t
	}
	if raw := c.Query("end"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			BadRequest(c, "invalid end date, expected YYYY-MM-DD")
			return filter, false
		}
		filter.End = &t
	}
	return filter, true
}

func (h *PlateHandler) List(c *gin.Context) {
	filter, ok := parseListFilter(c)
	if !ok {
		return
	}
	plates, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, plates)
}

func (h *PlateHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	plate, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, plate)
}

// Quote prices a prospective plate without saving it.
func (h *PlateHandler) Quote(c *gin.Context) {
	var req service.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	breakdown, err := h.service.Quote(c.Request.Context(), &req)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, breakdown)
}

func (h *PlateHandler) Create(c *gin.Context) {
	var req service.CreatePlateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	plate, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		Error(c, err)
		return
	}
	Created(c, plate)
}

func (h *PlateHandler) BatchCreate(c *gin.Context) {
	var req service.BatchCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	plates, err := h.service.BatchCreate(c.Request.Context(), &req)
	if err != nil {
		Error(c, err)
		return
	}
	Created(c, plates)
}

func (h *PlateHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req service.UpdatePlateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	plate, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, plate)
}

func (h *PlateHandler) Delete(c *gin.Context) {
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
