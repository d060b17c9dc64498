package appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/blessing250/New-Chogmo/internal/api"
	"github.com/blessing250/New-Chogmo/internal/auth"
	"github.com/blessing250/New-Chogmo/internal/catalog"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Book godoc
// @Summary      Book an appointment
// @Tags         appointments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      BookRequest  true  "Packages, date and time slot"
// @Success      201      {object}  Appointment
// @Failure      400      {object}  gin.H
// @Router       /appointments/book [post]
func (h *Handler) Book(c *gin.Context) {
	memberID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	a, err := h.service.Book(c.Request.Context(), memberID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidDate):
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be today or later, format YYYY-MM-DD"})
		case errors.Is(err, catalog.ErrPackageNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown service package"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to book appointment"})
		}
		return
	}

	c.JSON(http.StatusCreated, a)
}

// ListMineUpcoming godoc
// @Summary      My upcoming appointments
// @Tags         appointments
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  Appointment
// @Router       /appointments/me/upcoming [get]
func (h *Handler) ListMineUpcoming(c *gin.Context) {
	memberID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	appointments, err := h.service.ListUpcomingByMember(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load appointments"})
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// ListAll godoc
// @Summary      All appointments
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  AppointmentWithMember
// @Router       /admin/appointments [get]
func (h *Handler) ListAll(c *gin.Context) {
	appointments, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load appointments"})
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// ListToday godoc
// @Summary      Today's appointments
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  AppointmentWithMember
// @Router       /admin/appointments/today [get]
func (h *Handler) ListToday(c *gin.Context) {
	appointments, err := h.service.ListToday(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load appointments"})
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// SetStatus godoc
// @Summary      Confirm or cancel a pending appointment
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int               true  "Appointment ID"
// @Param        request  body      SetStatusRequest  true  "Target status"
// @Success      200      {object}  Appointment
// @Failure      400      {object}  gin.H
// @Failure      409      {object}  gin.H
// @Router       /admin/appointments/{id}/status [patch]
func (h *Handler) SetStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment id"})
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	a, err := h.service.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be confirmed or cancelled"})
		case errors.Is(err, ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "only pending appointments can change status"})
		case errors.Is(err, ErrAppointmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update appointment"})
		}
		return
	}

	c.JSON(http.StatusOK, a)
}
