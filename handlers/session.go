package handlers

import (
	"net/http"
	"strings"

	"mindhaven/middleware"
	"mindhaven/models"
	session "mindhaven/services/session"
	"mindhaven/utils"

	"github.com/gin-gonic/gin"
)

// SessionHandler exposes the booking flow and session lifecycle over HTTP.
type SessionHandler struct {
	Service session.SessionService
	Clock   utils.Clock
}

func NewSessionHandler(svc session.SessionService, clock utils.Clock) *SessionHandler {
	return &SessionHandler{Service: svc, Clock: clock}
}

func (h *SessionHandler) actor(c *gin.Context) session.Actor {
	return session.Actor{
		ID:   c.GetString(middleware.CtxActorID),
		Role: c.GetString(middleware.CtxActorRole),
	}
}

// sessionView pairs a session with the controls a client may enable for it
// right now. The flags are advisory; every transition re-validates.
type sessionView struct {
	models.Session
	Actions session.Actions `json:"actions"`
}

func (h *SessionHandler) view(s models.Session) sessionView {
	return sessionView{Session: s, Actions: session.ActionsFor(s, h.Clock.Now())}
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case session.IsValidationError(err):
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
	case session.IsTransitionError(err):
		utils.JSONError(c, http.StatusConflict, "action not allowed", err.Error())
	case strings.Contains(err.Error(), "not found"):
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
	}
}

// BookSession creates a session request from the patient's slot selection.
func (h *SessionHandler) BookSession(c *gin.Context) {
	var input session.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	// The patient always books for themselves.
	input.PatientID = c.GetString(middleware.CtxActorID)

	booked, err := h.Service.BookSession(c.Request.Context(), input)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session": h.view(*booked)})
}

// ListSessions returns the caller's sessions, newest filter wins. Patients
// and therapists each see only their own side.
func (h *SessionHandler) ListSessions(c *gin.Context) {
	filter := models.SessionFilter{
		Status: c.Query("status"),
		From:   c.Query("from"),
		To:     c.Query("to"),
	}
	switch c.GetString(middleware.CtxActorRole) {
	case utils.RoleTherapist:
		filter.TherapistID = c.GetString(middleware.CtxActorID)
	default:
		filter.PatientID = c.GetString(middleware.CtxActorID)
	}

	sessions, err := h.Service.ListSessions(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	views := make([]sessionView, 0, len(sessions))
	for _, s := range sessions {
		views = append(views, h.view(s))
	}
	c.JSON(http.StatusOK, gin.H{"sessions": views})
}

// GetSession returns one session, participants only.
func (h *SessionHandler) GetSession(c *gin.Context) {
	s, err := h.Service.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	actorID := c.GetString(middleware.CtxActorID)
	if s.PatientID != actorID && s.TherapistID != actorID {
		utils.JSONError(c, http.StatusForbidden, "forbidden", "not a participant of this session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": h.view(*s)})
}

// AcceptSession confirms a pending session with a meeting link.
func (h *SessionHandler) AcceptSession(c *gin.Context) {
	var input struct {
		MeetingLink string `json:"meetingLink"`
		Notes       string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	s, err := h.Service.AcceptSession(c.Request.Context(), c.Param("id"), h.actor(c), input.MeetingLink, input.Notes)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": h.view(*s)})
}

// RejectSession declines a pending session.
func (h *SessionHandler) RejectSession(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	// The reason is optional, so an empty body is fine.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
	}

	s, err := h.Service.RejectSession(c.Request.Context(), c.Param("id"), h.actor(c), input.Reason)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": h.view(*s)})
}

// CancelSession withdraws a session on the patient's request.
func (h *SessionHandler) CancelSession(c *gin.Context) {
	var input struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "a cancellation reason is required")
		return
	}

	s, err := h.Service.CancelSession(c.Request.Context(), c.Param("id"), h.actor(c), input.Reason)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": h.view(*s)})
}

// CompleteSession marks a held session as completed.
func (h *SessionHandler) CompleteSession(c *gin.Context) {
	s, err := h.Service.CompleteSession(c.Request.Context(), c.Param("id"), h.actor(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": h.view(*s)})
}

// MarkNoShow records that the patient did not attend.
func (h *SessionHandler) MarkNoShow(c *gin.Context) {
	s, err := h.Service.MarkSessionNoShow(c.Request.Context(), c.Param("id"), h.actor(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": h.view(*s)})
}

// UpdateNotes attaches therapist notes to a confirmed or completed session.
func (h *SessionHandler) UpdateNotes(c *gin.Context) {
	var input struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	s, err := h.Service.UpdateSessionNotes(c.Request.Context(), c.Param("id"), h.actor(c), input.Notes)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": h.view(*s)})
}
