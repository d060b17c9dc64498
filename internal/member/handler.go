package member

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

// Register godoc
// @Summary      Register new member
// @Description  Creates a member account with a fresh QR identifier and returns tokens.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "Registration data"
// @Success      201      {object}  LoginResponse
// @Failure      400      {object}  gin.H
// @Failure      409      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	m, accessToken, refreshToken, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create member"})
		return
	}

	c.JSON(http.StatusCreated, LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         *m,
	})
}

// Login godoc
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Credentials"
// @Success      200      {object}  LoginResponse
// @Failure      400      {object}  gin.H
// @Failure      401      {object}  gin.H
// @Router       /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	m, accessToken, refreshToken, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         *m,
	})
}

// GetMe godoc
// @Summary      Current member profile
// @Description  Authoritative membership snapshot; clients refresh their cached copy from here.
// @Tags         member
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Member
// @Failure      401  {object}  gin.H
// @Failure      404  {object}  gin.H
// @Router       /me [get]
func (h *Handler) GetMe(c *gin.Context) {
	memberID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	m, err := h.service.GetByID(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}

	c.JSON(http.StatusOK, m)
}

// RefreshToken godoc
// @Summary      Refresh access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  gin.H
// @Failure      401  {object}  gin.H
// @Router       /auth/refresh [post]
func (h *Handler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refresh_token is required"})
		return
	}

	newAccessToken, m, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": newAccessToken,
		"user":         m,
	})
}

// UpdateProfile godoc
// @Summary      Update own profile
// @Description  Blank fields keep their current value.
// @Tags         member
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      UpdateProfileRequest  true  "Profile fields"
// @Success      200      {object}  Member
// @Failure      400      {object}  gin.H
// @Failure      409      {object}  gin.H
// @Router       /auth/profile [patch]
func (h *Handler) UpdateProfile(c *gin.Context) {
	memberID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	m, err := h.service.UpdateProfile(c.Request.Context(), memberID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailExists):
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		case errors.Is(err, ErrMemberNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		}
		return
	}

	c.JSON(http.StatusOK, m)
}

// ResetPassword godoc
// @Summary      Reset a password
// @Description  Members reset their own password; admins may reset any.
// @Tags         auth
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      ResetPasswordRequest  true  "Email and new password"
// @Success      200      {object}  api.MessageResponse
// @Failure      403      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /auth/reset-password [post]
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	callerEmail, _ := auth.GetUserEmail(c)
	callerRole, _ := auth.GetUserRole(c)
	if callerEmail != req.Email && callerRole != string(RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req.Email, req.NewPassword); err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Password updated"})
}

// Notify godoc
// @Summary      Send a notification email to a member
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      NotifyRequest  true  "Recipient, subject and body"
// @Success      200      {object}  api.MessageResponse
// @Failure      404      {object}  gin.H
// @Router       /admin/notify [post]
func (h *Handler) Notify(c *gin.Context) {
	var req NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	if err := h.service.Notify(c.Request.Context(), req.Email, req.Subject, req.Text); err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue notification"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Notification queued"})
}

// GetByID godoc
// @Summary      Get member by ID
// @Description  Members may read their own record; admins may read any.
// @Tags         member
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "Member ID"
// @Success      200  {object}  Member
// @Failure      403  {object}  gin.H
// @Failure      404  {object}  gin.H
// @Router       /members/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
		return
	}

	callerID, _ := auth.GetUserID(c)
	callerRole, _ := auth.GetUserRole(c)
	if callerID != id && callerRole != string(RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	m, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}

	c.JSON(http.StatusOK, m)
}

// ListAll godoc
// @Summary      List all members
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  Member
// @Router       /admin/members [get]
func (h *Handler) ListAll(c *gin.Context) {
	members, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load members"})
		return
	}

	c.JSON(http.StatusOK, members)
}

// ListPlans godoc
// @Summary      List membership plans
// @Tags         member
// @Produce      json
// @Success      200  {array}  Plan
// @Router       /plans [get]
func (h *Handler) ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, Plans())
}

// Upgrade godoc
// @Summary      Upgrade membership
// @Description  Verifies a confirmed provider transaction and grants the tier. Idempotent per tx_ref.
// @Tags         member
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int             true  "Member ID"
// @Param        request  body  UpgradeRequest  true  "Tier and transaction reference"
// @Success      200      {object}  UpgradeResponse
// @Failure      400      {object}  gin.H
// @Failure      402      {object}  gin.H
// @Failure      409      {object}  gin.H
// @Router       /members/{id}/upgrade [post]
func (h *Handler) Upgrade(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
		return
	}

	callerID, _ := auth.GetUserID(c)
	callerRole, _ := auth.GetUserRole(c)
	if callerID != id && callerRole != string(RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	var req UpgradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	m, err := h.service.Upgrade(c.Request.Context(), id, req.Tier, req.TxRef)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownTier):
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown membership tier"})
		case errors.Is(err, ErrAmountMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": "paid amount does not match tier price"})
		case errors.Is(err, ErrPaymentNotConfirmed):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "payment not confirmed"})
		case errors.Is(err, ErrTxRefForeign):
			c.JSON(http.StatusForbidden, gin.H{"error": "transaction belongs to another member"})
		case errors.Is(err, ErrPaidNotUpgraded):
			// Money moved; the client must not retry the charge, only the upgrade.
			c.JSON(http.StatusConflict, gin.H{"error": "payment confirmed but upgrade incomplete, retry with the same tx_ref"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "upgrade failed"})
		}
		return
	}

	c.JSON(http.StatusOK, UpgradeResponse{Member: m})
}
