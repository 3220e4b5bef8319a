package handlers

import (
	"net/http"

	portssvc "github.com/bizbookhq/bizbook_backend/internal/core/ports/services"
	"github.com/bizbookhq/bizbook_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// LedgerHandler handles expense posting, transfers, and journal reads.
type LedgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerService portssvc.LedgerSvcFacade) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// AddExpense godoc
// @Summary Post an expense against an account
// @Tags ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AddExpenseRequest true "Expense payload"
// @Success 201 {object} dto.TransactionResponse
// @Failure 422 {object} map[string]string
// @Router /transactions/expense [post]
func (h *LedgerHandler) AddExpense(c *gin.Context) {
	userID, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}

	var req dto.AddExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txn, err := h.ledgerService.AddExpense(c.Request.Context(), businessID, req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// Transfer godoc
// @Summary Move money between two accounts
// @Tags ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TransferRequest true "Transfer payload"
// @Success 201 {object} dto.TransactionResponse
// @Failure 422 {object} map[string]string
// @Router /transactions/transfer [post]
func (h *LedgerHandler) Transfer(c *gin.Context) {
	userID, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txn, err := h.ledgerService.Transfer(c.Request.Context(), businessID, req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// GetTransaction godoc
// @Summary Get a journal row by ID
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string
// @Router /transactions/{transactionID} [get]
func (h *LedgerHandler) GetTransaction(c *gin.Context) {
	_, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}
	txn, err := h.ledgerService.GetTransaction(c.Request.Context(), businessID, c.Param("transactionID"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// ListTransactions godoc
// @Summary List the business's journal, newest first
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Router /transactions [get]
func (h *LedgerHandler) ListTransactions(c *gin.Context) {
	_, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.ledgerService.ListTransactions(c.Request.Context(), businessID, params)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListAccountTransactions godoc
// @Summary List one account's journal rows, newest first
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Param accountID path string true "Account ID"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Router /accounts/{accountID}/transactions [get]
func (h *LedgerHandler) ListAccountTransactions(c *gin.Context) {
	_, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.ledgerService.ListAccountTransactions(c.Request.Context(), businessID, c.Param("accountID"), params)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
