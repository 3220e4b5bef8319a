package handlers

import (
	"net/http"

	portssvc "github.com/bizbookhq/bizbook_backend/internal/core/ports/services"
	"github.com/bizbookhq/bizbook_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// CustomerHandler handles customer and purchase-history endpoints.
type CustomerHandler struct {
	customerService portssvc.CustomerSvcFacade
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerService portssvc.CustomerSvcFacade) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// CreateCustomer godoc
// @Summary Add a customer
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCustomerRequest true "Customer payload"
// @Success 201 {object} dto.CustomerResponse
// @Router /customers [post]
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	userID, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}

	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), businessID, req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

// GetCustomer godoc
// @Summary Get a customer by ID
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param customerID path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} map[string]string
// @Router /customers/{customerID} [get]
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	_, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}
	customer, err := h.customerService.GetCustomer(c.Request.Context(), businessID, c.Param("customerID"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// ListCustomers godoc
// @Summary List the business's active customers
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.CustomerResponse
// @Router /customers [get]
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	_, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}
	limit, offset := pageParams(c)
	customers, err := h.customerService.ListCustomers(c.Request.Context(), businessID, limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	resp := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		resp = append(resp, dto.ToCustomerResponse(&customers[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// GetPurchaseHistory godoc
// @Summary Get a customer's lifetime purchase rollup
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param customerID path string true "Customer ID"
// @Success 200 {object} dto.PurchaseHistoryResponse
// @Failure 404 {object} map[string]string
// @Router /customers/{customerID}/purchase-history [get]
func (h *CustomerHandler) GetPurchaseHistory(c *gin.Context) {
	_, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}
	history, err := h.customerService.GetPurchaseHistory(c.Request.Context(), businessID, c.Param("customerID"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPurchaseHistoryResponse(history))
}
