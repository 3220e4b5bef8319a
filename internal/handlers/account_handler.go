package handlers

import (
	"net/http"

	portssvc "github.com/bizbookhq/bizbook_backend/internal/core/ports/services"
	"github.com/bizbookhq/bizbook_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles the account registry endpoints.
type AccountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService portssvc.AccountSvcFacade) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// CreateAccount godoc
// @Summary Create an account
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAccountRequest true "Account payload"
// @Success 201 {object} dto.AccountResponse
// @Failure 409 {object} map[string]string
// @Router /accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	userID, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), businessID, req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// GetAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string
// @Router /accounts/{accountID} [get]
func (h *AccountHandler) GetAccount(c *gin.Context) {
	_, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}
	account, err := h.accountService.GetAccountByID(c.Request.Context(), businessID, c.Param("accountID"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// GetBalance godoc
// @Summary Get an account's current balance
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param accountID path string true "Account ID"
// @Success 200 {object} map[string]string
// @Router /accounts/{accountID}/balance [get]
func (h *AccountHandler) GetBalance(c *gin.Context) {
	_, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}
	balance, err := h.accountService.GetBalance(c.Request.Context(), businessID, c.Param("accountID"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// ListAccounts godoc
// @Summary List the business's accounts
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.AccountResponse
// @Router /accounts [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	_, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}
	limit, offset := pageParams(c)
	accounts, err := h.accountService.ListAccounts(c.Request.Context(), businessID, limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	resp := make([]dto.AccountResponse, 0, len(accounts))
	for i := range accounts {
		resp = append(resp, dto.ToAccountResponse(&accounts[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateAccount godoc
// @Summary Update an account's name or active flag
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param accountID path string true "Account ID"
// @Param request body dto.UpdateAccountRequest true "Update payload"
// @Success 200 {object} dto.AccountResponse
// @Router /accounts/{accountID} [put]
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	userID, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), businessID, c.Param("accountID"), req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// DeactivateAccount godoc
// @Summary Deactivate an account
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param accountID path string true "Account ID"
// @Success 204
// @Failure 409 {object} map[string]string
// @Router /accounts/{accountID} [delete]
func (h *AccountHandler) DeactivateAccount(c *gin.Context) {
	userID, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}
	if err := h.accountService.DeactivateAccount(c.Request.Context(), businessID, c.Param("accountID"), userID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
