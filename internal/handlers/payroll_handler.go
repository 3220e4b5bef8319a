package handlers

import (
	"net/http"

	portssvc "github.com/bizbookhq/bizbook_backend/internal/core/ports/services"
	"github.com/bizbookhq/bizbook_backend/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PayrollHandler handles salary workflows and team member management.
type PayrollHandler struct {
	payrollService portssvc.PayrollSvcFacade
}

// NewPayrollHandler creates a new PayrollHandler.
func NewPayrollHandler(payrollService portssvc.PayrollSvcFacade) *PayrollHandler {
	return &PayrollHandler{payrollService: payrollService}
}

// DistributeSalary godoc
// @Summary Accrue a salary amount into a member's sub-ledger
// @Tags payroll
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DistributeSalaryRequest true "Distribution payload"
// @Success 204
// @Router /payroll/distribute [post]
func (h *PayrollHandler) DistributeSalary(c *gin.Context) {
	userID, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}

	var req dto.DistributeSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.payrollService.DistributeSalary(c.Request.Context(), businessID, req, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PayoutSalary godoc
// @Summary Pay a member out of the salary pool
// @Tags payroll
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PayoutSalaryRequest true "Payout payload"
// @Success 204
// @Failure 422 {object} map[string]string
// @Router /payroll/payout [post]
func (h *PayrollHandler) PayoutSalary(c *gin.Context) {
	userID, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}

	var req dto.PayoutSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.payrollService.PayoutSalary(c.Request.Context(), businessID, req, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AutoDistribute godoc
// @Summary Distribute the current month's salary to every active salaried member
// @Tags payroll
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AutoDistributeResponse
// @Router /payroll/auto-distribute [post]
func (h *PayrollHandler) AutoDistribute(c *gin.Context) {
	userID, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}
	count, err := h.payrollService.AutoDistributeSalaries(c.Request.Context(), businessID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AutoDistributeResponse{Distributed: count})
}

// CreateMember godoc
// @Summary Add a team member
// @Tags payroll
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTeamMemberRequest true "Member payload"
// @Success 201 {object} dto.TeamMemberResponse
// @Router /team/members [post]
func (h *PayrollHandler) CreateMember(c *gin.Context) {
	userID, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}

	var req dto.CreateTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.payrollService.CreateMember(c.Request.Context(), businessID, req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTeamMemberResponse(member))
}

// UpdateMember godoc
// @Summary Update a team member
// @Tags payroll
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param memberID path string true "Member ID"
// @Param request body dto.UpdateTeamMemberRequest true "Update payload"
// @Success 200 {object} dto.TeamMemberResponse
// @Router /team/members/{memberID} [put]
func (h *PayrollHandler) UpdateMember(c *gin.Context) {
	userID, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}

	var req dto.UpdateTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.payrollService.UpdateMember(c.Request.Context(), businessID, c.Param("memberID"), req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTeamMemberResponse(member))
}

// ListMembers godoc
// @Summary List the business's team members
// @Tags payroll
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.TeamMemberResponse
// @Router /team/members [get]
func (h *PayrollHandler) ListMembers(c *gin.Context) {
	_, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}
	members, err := h.payrollService.ListMembers(c.Request.Context(), businessID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	resp := make([]dto.TeamMemberResponse, 0, len(members))
	for i := range members {
		resp = append(resp, dto.ToTeamMemberResponse(&members[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// GetMemberAccount godoc
// @Summary Get a member's salary balance and sub-ledger history
// @Tags payroll
// @Produce json
// @Security BearerAuth
// @Param memberID path string true "Member ID"
// @Success 200 {object} map[string]any
// @Router /team/members/{memberID}/account [get]
func (h *PayrollHandler) GetMemberAccount(c *gin.Context) {
	_, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}
	account, history, err := h.payrollService.GetMemberAccount(c.Request.Context(), businessID, c.Param("memberID"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	balance := decimal.Zero
	if account != nil {
		balance = account.Balance
	}
	txns := make([]dto.SalaryTransactionResponse, 0, len(history))
	for i := range history {
		txns = append(txns, dto.ToSalaryTransactionResponse(&history[i]))
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance, "transactions": txns})
}
