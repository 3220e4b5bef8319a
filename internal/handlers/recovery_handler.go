package handlers

import (
	"net/http"

	portssvc "github.com/bizbookhq/bizbook_backend/internal/core/ports/services"
	"github.com/bizbookhq/bizbook_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// RecoveryHandler handles the monthly recovery rollover and history reads.
type RecoveryHandler struct {
	recoveryService portssvc.RecoverySvcFacade
}

// NewRecoveryHandler creates a new RecoveryHandler.
func NewRecoveryHandler(recoveryService portssvc.RecoverySvcFacade) *RecoveryHandler {
	return &RecoveryHandler{recoveryService: recoveryService}
}

// TransitionMonth godoc
// @Summary Close last month's recovery rows and open the current month's
// @Tags recoveries
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MonthTransitionResponse
// @Router /recoveries/transition [post]
func (h *RecoveryHandler) TransitionMonth(c *gin.Context) {
	userID, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}
	result, err := h.recoveryService.TransitionToNewMonth(c.Request.Context(), businessID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListRecoveries godoc
// @Summary List a category's monthly recovery rows
// @Tags recoveries
// @Produce json
// @Security BearerAuth
// @Param categoryID query string true "Category ID"
// @Success 200 {array} dto.RecoveryResponse
// @Router /recoveries [get]
func (h *RecoveryHandler) ListRecoveries(c *gin.Context) {
	_, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}
	categoryID := c.Query("categoryID")
	if categoryID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "categoryID query parameter is required"})
		return
	}
	recoveries, err := h.recoveryService.ListRecoveries(c.Request.Context(), businessID, categoryID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	resp := make([]dto.RecoveryResponse, 0, len(recoveries))
	for i := range recoveries {
		resp = append(resp, dto.ToRecoveryResponse(&recoveries[i]))
	}
	c.JSON(http.StatusOK, resp)
}
