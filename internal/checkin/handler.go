package checkin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/blessing250/New-Chogmo/internal/api"
	"github.com/blessing250/New-Chogmo/internal/auth"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CheckIn godoc
// @Summary      Check in a member
// @Description  Resolves a scanned QR payload, consumes one session and appends an attendance record.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CheckInRequest  true  "Scanned payload and instance selection"
// @Success      200      {object}  CheckInResult
// @Failure      404      {object}  gin.H
// @Failure      409      {object}  gin.H
// @Router       /admin/checkin [post]
func (h *Handler) CheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	result, err := h.service.CheckIn(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownMember):
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown member"})
		case errors.Is(err, ErrNoSessionsAvailable):
			c.JSON(http.StatusConflict, gin.H{"error": "no sessions available"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "check-in failed"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListMine godoc
// @Summary      My attendance history
// @Tags         attendance
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  AttendanceLog
// @Router       /attendance/me [get]
func (h *Handler) ListMine(c *gin.Context) {
	memberID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	logs, err := h.service.ListByMember(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load attendance"})
		return
	}

	c.JSON(http.StatusOK, logs)
}

// ListAll godoc
// @Summary      All attendance records
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        limit   query  int  false  "Page size"
// @Param        offset  query  int  false  "Offset"
// @Success      200  {array}  AttendanceLog
// @Router       /admin/attendance [get]
func (h *Handler) ListAll(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	logs, err := h.service.ListAll(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load attendance"})
		return
	}

	c.JSON(http.StatusOK, logs)
}
