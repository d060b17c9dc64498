package reports

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/blessing250/New-Chogmo/internal/logger"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// GetStats godoc
// @Summary      Dashboard statistics
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Stats
// @Router       /admin/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.repo.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetRevenue godoc
// @Summary      Revenue by membership tier
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        from  query  string  false  "Start date YYYY-MM-DD"
// @Param        to    query  string  false  "End date YYYY-MM-DD"
// @Success      200  {array}  RevenueByTier
// @Router       /admin/revenue [get]
func (h *Handler) GetRevenue(c *gin.Context) {
	to := time.Now()
	from := to.AddDate(0, -1, 0)

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
			return
		}
		// Inclusive end of day.
		to = parsed.AddDate(0, 0, 1)
	}

	revenue, err := h.repo.GetRevenueByTier(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load revenue"})
		return
	}

	c.JSON(http.StatusOK, revenue)
}

// Download godoc
// @Summary      Download attendance and payments report
// @Tags         admin
// @Security     BearerAuth
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /admin/reports/download [get]
func (h *Handler) Download(c *gin.Context) {
	ctx := c.Request.Context()

	attendance, err := h.repo.ListAttendanceRows(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}

	payments, err := h.repo.ListPaymentRows(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}

	filename := fmt.Sprintf("club-report-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	w := csv.NewWriter(c.Writer)

	_ = w.Write([]string{"section", "member", "email", "service", "checked_in_at", "session_used"})
	for _, row := range attendance {
		_ = w.Write([]string{
			"attendance",
			row.MemberName,
			row.MemberEmail,
			row.ServiceType,
			row.CheckInTime.Format(time.RFC3339),
			strconv.FormatBool(row.SessionUsed),
		})
	}

	_ = w.Write([]string{"section", "member", "amount", "currency", "status", "tx_ref"})
	for _, row := range payments {
		_ = w.Write([]string{
			"payment",
			row.MemberName,
			strconv.FormatInt(row.Amount, 10),
			row.Currency,
			row.Status,
			row.TxRef,
		})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		logger.Error("failed to stream report", "error", err)
	}
}
