package routes

import (
	"mindhaven/handlers"
	"mindhaven/middleware"
	"mindhaven/utils"

	"github.com/gin-gonic/gin"
)

// RegisterSessionRoutes registers all endpoints for the session engine.
func RegisterSessionRoutes(r *gin.Engine, sh *handlers.SessionHandler, ah *handlers.AvailabilityHandler) {
	therapists := r.Group("/api/therapists")
	therapists.Use(middleware.JWTAuthMiddleware())
	{
		therapists.GET("/:id/calendar", ah.GetCalendar)
		therapists.PUT("/:id/availability", middleware.RequireRole(utils.RoleTherapist), ah.UpdateAvailability)
	}

	sessions := r.Group("/api/sessions")
	sessions.Use(middleware.JWTAuthMiddleware())
	{
		sessions.GET("", sh.ListSessions)
		sessions.GET("/:id", sh.GetSession)
		sessions.POST("", middleware.RequireRole(utils.RolePatient), sh.BookSession)
		sessions.POST("/:id/cancel", middleware.RequireRole(utils.RolePatient), sh.CancelSession)

		therapistOnly := sessions.Group("")
		therapistOnly.Use(middleware.RequireRole(utils.RoleTherapist))
		{
			therapistOnly.POST("/:id/accept", sh.AcceptSession)
			therapistOnly.POST("/:id/reject", sh.RejectSession)
			therapistOnly.POST("/:id/complete", sh.CompleteSession)
			therapistOnly.POST("/:id/no-show", sh.MarkNoShow)
			therapistOnly.PUT("/:id/notes", sh.UpdateNotes)
		}
	}
}
