package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/printlab/printerm/internal/service"
)

type StatsHandler struct {
	service *service.StatsService
}

func NewStatsHandler(service *service.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// parseStatsFilter reads the optional start/end query parameters as
// YYYY-MM-DD dates.
func parseStatsFilter(c *gin.Context) (service.StatsFilter, bool) {
	var filter service.StatsFilter
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

// Global reports the studio-wide dashboard summary.
func (h *StatsHandler) Global(c *gin.Context) {
	filter, ok := parseStatsFilter(c)
	if !ok {
		return
	}
	stats, err := h.service.Global(c.Request.Context(), filter)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, stats)
}

// ForUser reports totals across a user's projects.
func (h *StatsHandler) ForUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	filter, ok := parseStatsFilter(c)
	if !ok {
		return
	}
	stats, err := h.service.ForUser(c.Request.Context(), id, filter)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, stats)
}

// ForProject reports a single project's totals.
func (h *StatsHandler) ForProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	filter, ok := parseStatsFilter(c)
	if !ok {
		return
	}
	stats, err := h.service.ForProject(c.Request.Context(), id, filter)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, stats)
}
