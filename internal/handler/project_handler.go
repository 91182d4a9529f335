package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/printlab/printerm/internal/service"
)

type ProjectHandler struct {
	service *service.ProjectService
}

func NewProjectHandler(service *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

func (h *ProjectHandler) List(c *gin.Context) {
	var userID *uint
	if raw := c.Query("user_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			BadRequest(c, "invalid user_id")
			return
		}
		id := uint(parsed)
		userID = &id
	}
	projects, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, projects)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	project, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, project)
}

// GetPricing returns the project's pricing parameters on their own.
func (h *ProjectHandler) GetPricing(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	override, err := h.service.GetPricing(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, override)
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req service.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	project, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		Error(c, err)
		return
	}
	Created(c, project)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req service.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	project, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, project)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
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
