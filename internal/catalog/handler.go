package catalog

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

// ListPackages godoc
// @Summary      List service packages
// @Tags         packages
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  ServicePackage
// @Router       /packages [get]
func (h *Handler) ListPackages(c *gin.Context) {
	// Admin views retired entries too.
	role, _ := auth.GetUserRole(c)
	onlyActive := role != "admin"

	packages, err := h.service.ListDefinitions(c.Request.Context(), onlyActive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load packages"})
		return
	}

	c.JSON(http.StatusOK, packages)
}

// CreatePackage godoc
// @Summary      Create service package
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreatePackageRequest  true  "Package definition"
// @Success      201      {object}  ServicePackage
// @Failure      400      {object}  gin.H
// @Router       /admin/packages [post]
func (h *Handler) CreatePackage(c *gin.Context) {
	var req CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	sp, err := h.service.CreateDefinition(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidServiceType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "type must be gym, sauna or massage"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create package"})
		return
	}

	c.JSON(http.StatusCreated, sp)
}

// UpdatePackage godoc
// @Summary      Update service package
// @Description  Edits apply to future purchases only; existing instances are untouched.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                   true  "Package ID"
// @Param        request  body      UpdatePackageRequest  true  "New definition"
// @Success      200      {object}  ServicePackage
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /admin/packages/{id} [put]
func (h *Handler) UpdatePackage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid package id"})
		return
	}

	var req UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	sp, err := h.service.UpdateDefinition(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPackageNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "package not found"})
		case errors.Is(err, ErrInvalidServiceType):
			c.JSON(http.StatusBadRequest, gin.H{"error": "type must be gym, sauna or massage"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update package"})
		}
		return
	}

	c.JSON(http.StatusOK, sp)
}

// DeletePackage godoc
// @Summary      Retire service package
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "Package ID"
// @Success      200  {object}  gin.H
// @Failure      404  {object}  gin.H
// @Router       /admin/packages/{id} [delete]
func (h *Handler) DeletePackage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid package id"})
		return
	}

	if err := h.service.DeactivateDefinition(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrPackageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "package not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete package"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "package retired"})
}

// Purchase godoc
// @Summary      Purchase a package
// @Tags         packages
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "Package ID"
// @Success      201  {object}  PackageInstance
// @Failure      404  {object}  gin.H
// @Router       /packages/{id}/purchase [post]
func (h *Handler) Purchase(c *gin.Context) {
	memberID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	packageID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid package id"})
		return
	}

	inst, err := h.service.Purchase(c.Request.Context(), memberID, packageID)
	if err != nil {
		if errors.Is(err, ErrPackageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "package not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to purchase package"})
		return
	}

	c.JSON(http.StatusCreated, inst)
}

// ListMyActive godoc
// @Summary      List my active package instances
// @Tags         packages
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  InstanceWithPackage
// @Router       /packages/me/active [get]
func (h *Handler) ListMyActive(c *gin.Context) {
	memberID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	instances, err := h.service.ListActiveInstances(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load packages"})
		return
	}

	c.JSON(http.StatusOK, instances)
}
