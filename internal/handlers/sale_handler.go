package handlers

import (
	"net/http"

	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	portssvc "github.com/bizbookhq/bizbook_backend/internal/core/ports/services"
	"github.com/bizbookhq/bizbook_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// SaleHandler handles sale creation, repayments, and receivable listings.
type SaleHandler struct {
	saleService portssvc.SaleSvcFacade
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(saleService portssvc.SaleSvcFacade) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// CreateSale godoc
// @Summary Record a sale
// @Tags sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSaleRequest true "Sale payload"
// @Success 201 {object} dto.SaleResponse
// @Failure 422 {object} map[string]string
// @Router /sales [post]
func (h *SaleHandler) CreateSale(c *gin.Context) {
	userID, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}

	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), businessID, req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToSaleResponse(sale))
}

// RecordPayment godoc
// @Summary Record a repayment against a debit sale
// @Tags sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param saleID path string true "Sale ID"
// @Param request body dto.RecordPaymentRequest true "Payment payload"
// @Success 200 {object} dto.DebitAccountResponse
// @Failure 422 {object} map[string]string
// @Router /sales/{saleID}/payments [post]
func (h *SaleHandler) RecordPayment(c *gin.Context) {
	userID, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	debit, err := h.saleService.RecordPayment(c.Request.Context(), businessID, c.Param("saleID"), req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDebitAccountResponse(debit))
}

// GetSale godoc
// @Summary Get a sale by ID
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param saleID path string true "Sale ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} map[string]string
// @Router /sales/{saleID} [get]
func (h *SaleHandler) GetSale(c *gin.Context) {
	_, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}
	sale, err := h.saleService.GetSale(c.Request.Context(), businessID, c.Param("saleID"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// ListSales godoc
// @Summary List the business's sales, newest first
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Param customerID query string false "Filter by customer"
// @Success 200 {array} dto.SaleResponse
// @Router /sales [get]
func (h *SaleHandler) ListSales(c *gin.Context) {
	_, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}
	limit, offset := pageParams(c)

	if customerID := c.Query("customerID"); customerID != "" {
		list, err := h.saleService.ListCustomerSales(c.Request.Context(), businessID, customerID, limit, offset)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, toSaleResponses(list))
		return
	}
	list, err := h.saleService.ListSales(c.Request.Context(), businessID, limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSaleResponses(list))
}

func toSaleResponses(sales []domain.Sale) []dto.SaleResponse {
	resp := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		resp = append(resp, dto.ToSaleResponse(&sales[i]))
	}
	return resp
}

// ListReceivables godoc
// @Summary List debit-sale receivables
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param running query bool false "Only open receivables"
// @Success 200 {array} dto.DebitAccountResponse
// @Router /receivables [get]
func (h *SaleHandler) ListReceivables(c *gin.Context) {
	_, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}
	runningOnly := c.Query("running") == "true"
	debits, err := h.saleService.ListReceivables(c.Request.Context(), businessID, runningOnly)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	resp := make([]dto.DebitAccountResponse, 0, len(debits))
	for i := range debits {
		resp = append(resp, dto.ToDebitAccountResponse(&debits[i]))
	}
	c.JSON(http.StatusOK, resp)
}
