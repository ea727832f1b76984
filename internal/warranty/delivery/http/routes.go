package http

import (
	"warranty-tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps HTTP verbs and paths to handler methods.
// Write routes go through the rate limiter.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	items := rg.Group("/items")
	{
		items.POST("", mw.RateLimit(), h.Create)
		items.GET("", h.List)
		items.DELETE("", mw.RateLimit(), h.DeleteAll)

		items.GET("/closest", h.Closest)
		items.GET("/recent", h.Recent)

		items.GET("/:id", h.Detail)
		items.PUT("/:id", mw.RateLimit(), h.Update)
		items.DELETE("/:id", mw.RateLimit(), h.Delete)
		items.PUT("/:id/thumbnail", mw.RateLimit(), h.ReplaceThumbnail)
		items.POST("/:id/reminder", mw.RateLimit(), h.ScheduleReminder)
	}

	rg.GET("/dashboard", h.Dashboard)
}
