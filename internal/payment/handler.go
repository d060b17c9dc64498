package payment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blessing250/New-Chogmo/internal/auth"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// ListMine godoc
// @Summary      My payment history
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  Payment
// @Router       /payments/me [get]
func (h *Handler) ListMine(c *gin.Context) {
	memberID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	payments, err := h.repo.ListByMember(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}

// ListAll godoc
// @Summary      All payments
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  Payment
// @Router       /admin/payments [get]
func (h *Handler) ListAll(c *gin.Context) {
	payments, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}
