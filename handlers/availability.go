package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	therapistRepo "mindhaven/database/repository/therapist"
	"mindhaven/middleware"
	"mindhaven/models"
	session "mindhaven/services/session"
	"mindhaven/utils"

	"github.com/gin-gonic/gin"
)

var weekdayNames = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

// AvailabilityHandler serves the patient-facing calendar and lets therapists
// maintain their weekly availability.
type AvailabilityHandler struct {
	Service       session.SessionService
	TherapistRepo therapistRepo.TherapistRepository
	Clock         utils.Clock
}

func NewAvailabilityHandler(svc session.SessionService, repo therapistRepo.TherapistRepository, clock utils.Clock) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc, TherapistRepo: repo, Clock: clock}
}

// GetCalendar returns per-date bookability and slots for a therapist,
// starting today by default.
func (h *AvailabilityHandler) GetCalendar(c *gin.Context) {
	therapistID := c.Param("id")

	from := h.Clock.Now()
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", fmt.Sprintf("invalid 'from' date: %v", err))
			return
		}
		from = parsed
	}

	days := 30
	if v := c.Query("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "'days' must be an integer")
			return
		}
		days = parsed
	}

	calendar, err := h.Service.GetTherapistCalendar(c.Request.Context(), therapistID, from, days)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, calendar)
}

// UpdateAvailability replaces the calling therapist's weekly availability.
func (h *AvailabilityHandler) UpdateAvailability(c *gin.Context) {
	therapistID := c.Param("id")
	if c.GetString(middleware.CtxActorID) != therapistID {
		utils.JSONError(c, http.StatusForbidden, "forbidden", "therapists may only edit their own availability")
		return
	}

	var input struct {
		Availability models.WeeklyAvailability `json:"availability" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if err := validateAvailability(input.Availability); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid availability", err.Error())
		return
	}

	if err := h.TherapistRepo.UpdateAvailability(c.Request.Context(), therapistID, input.Availability); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": input.Availability})
}

func validateAvailability(av models.WeeklyAvailability) error {
	for day, ranges := range av {
		if !weekdayNames[day] {
			return fmt.Errorf("unknown weekday %q", day)
		}
		for _, r := range ranges {
			start, err := time.Parse("15:04", r.Start)
			if err != nil {
				return fmt.Errorf("%s: invalid start %q", day, r.Start)
			}
			end, err := time.Parse("15:04", r.End)
			if err != nil {
				return fmt.Errorf("%s: invalid end %q", day, r.End)
			}
			if !start.Before(end) {
				return fmt.Errorf("%s: range %s-%s is empty", day, r.Start, r.End)
			}
		}
	}
	return nil
}
