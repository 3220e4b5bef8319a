package handlers

import (
	"net/http"

	portssvc "github.com/bizbookhq/bizbook_backend/internal/core/ports/services"
	"github.com/bizbookhq/bizbook_backend/internal/dto"
	"github.com/bizbookhq/bizbook_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// BusinessHandler handles tenant setup and role management.
type BusinessHandler struct {
	businessService portssvc.BusinessSvcFacade
}

// NewBusinessHandler creates a new BusinessHandler.
func NewBusinessHandler(businessService portssvc.BusinessSvcFacade) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

// CreateBusiness godoc
// @Summary Create a business and become its owner
// @Tags businesses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateBusinessRequest true "Business payload"
// @Success 201 {object} dto.BusinessResponse
// @Failure 409 {object} map[string]string
// @Router /businesses [post]
func (h *BusinessHandler) CreateBusiness(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	business, err := h.businessService.CreateBusiness(c.Request.Context(), req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToBusinessResponse(business))
}

// GetBusiness godoc
// @Summary Get the caller's business
// @Tags businesses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.BusinessResponse
// @Router /businesses/me [get]
func (h *BusinessHandler) GetBusiness(c *gin.Context) {
	_, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}
	business, err := h.businessService.GetBusiness(c.Request.Context(), businessID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBusinessResponse(business))
}

// CreateRole godoc
// @Summary Define a role within the business
// @Tags businesses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateRoleRequest true "Role payload"
// @Success 201 {object} dto.RoleResponse
// @Router /roles [post]
func (h *BusinessHandler) CreateRole(c *gin.Context) {
	userID, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}

	var req dto.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := h.businessService.CreateRole(c.Request.Context(), businessID, req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToRoleResponse(role))
}

// ListRoles godoc
// @Summary List the business's roles
// @Tags businesses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.RoleResponse
// @Router /roles [get]
func (h *BusinessHandler) ListRoles(c *gin.Context) {
	_, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}
	roles, err := h.businessService.ListRoles(c.Request.Context(), businessID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	resp := make([]dto.RoleResponse, 0, len(roles))
	for i := range roles {
		resp = append(resp, dto.ToRoleResponse(&roles[i]))
	}
	c.JSON(http.StatusOK, resp)
}
