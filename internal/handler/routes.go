package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the API under /api/v1.
func RegisterRoutes(r *gin.Engine, h *Handlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.GET("", h.User.List)
			users.POST("", h.User.Create)
			users.GET("/:id", h.User.Get)
			users.PUT("/:id", h.User.Update)
			users.DELETE("/:id", h.User.Delete)
			users.GET("/:id/stats", h.Stats.ForUser)
		}

		materials := v1.Group("/materials")
		{
			materials.GET("", h.Material.List)
			materials.POST("", h.Material.Create)
			materials.GET("/alerts", h.Material.Alerts)
			materials.GET("/:id", h.Material.Get)
			materials.PUT("/:id", h.Material.Update)
			materials.DELETE("/:id", h.Material.Delete)
		}

		projects := v1.Group("/projects")
		{
			projects.GET("", h.Project.List)
			projects.POST("", h.Project.Create)
			projects.GET("/:id", h.Project.Get)
			projects.GET("/:id/pricing", h.Project.GetPricing)
			projects.PUT("/:id", h.Project.Update)
			projects.DELETE("/:id", h.Project.Delete)
			projects.GET("/:id/stats", h.Stats.ForProject)
		}

		plates := v1.Group("/plates")
		{
			plates.GET("", h.Plate.List)
			plates.POST("", h.Plate.Create)
			plates.POST("/quote", h.Plate.Quote)
			plates.POST("/batch", h.Plate.BatchCreate)
			plates.GET("/:id", h.Plate.Get)
			plates.PUT("/:id", h.Plate.Update)
			plates.DELETE("/:id", h.Plate.Delete)
		}

		settings := v1.Group("/settings")
		{
			settings.GET("", h.Settings.List)
			settings.PUT("/:key", h.Settings.Set)
		}

		v1.GET("/stats", h.Stats.Global)

		reports := v1.Group("/reports")
		{
			reports.GET("", h.Report.Get)
			reports.GET("/export", h.Report.Export)
		}
	}
}
