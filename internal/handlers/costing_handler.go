package handlers

import (
	"net/http"

	portssvc "github.com/bizbookhq/bizbook_backend/internal/core/ports/services"
	"github.com/bizbookhq/bizbook_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// CostingHandler handles cost categories, allocations, assets, and COGS pools.
type CostingHandler struct {
	costingService portssvc.CostingSvcFacade
}

// NewCostingHandler creates a new CostingHandler.
func NewCostingHandler(costingService portssvc.CostingSvcFacade) *CostingHandler {
	return &CostingHandler{costingService: costingService}
}

// CreateCategory godoc
// @Summary Create a cost category
// @Tags costing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCategoryRequest true "Category payload"
// @Success 201 {object} dto.CategoryResponse
// @Failure 409 {object} map[string]string
// @Router /cost-categories [post]
func (h *CostingHandler) CreateCategory(c *gin.Context) {
	userID, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.costingService.CreateCategory(c.Request.Context(), businessID, req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

// ListCategories godoc
// @Summary List the business's cost categories
// @Tags costing
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CategoryResponse
// @Router /cost-categories [get]
func (h *CostingHandler) ListCategories(c *gin.Context) {
	_, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}
	categories, err := h.costingService.ListCategories(c.Request.Context(), businessID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	resp := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		resp = append(resp, dto.ToCategoryResponse(&categories[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// CreateAllocation godoc
// @Summary Bind a product to a cost category with a per-unit amount
// @Tags costing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAllocationRequest true "Allocation payload"
// @Success 201 {object} domain.ProductCostAllocation
// @Failure 422 {object} map[string]string
// @Router /cost-allocations [post]
func (h *CostingHandler) CreateAllocation(c *gin.Context) {
	userID, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}

	var req dto.CreateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	allocation, err := h.costingService.RegisterAllocation(c.Request.Context(), businessID, req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, allocation)
}

// UpdateAllocation godoc
// @Summary Change an allocation's per-unit amount
// @Tags costing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param allocationID path string true "Allocation ID"
// @Param request body dto.UpdateAllocationRequest true "Update payload"
// @Success 200 {object} domain.ProductCostAllocation
// @Failure 422 {object} map[string]string
// @Router /cost-allocations/{allocationID} [put]
func (h *CostingHandler) UpdateAllocation(c *gin.Context) {
	userID, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}

	var req dto.UpdateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	allocation, err := h.costingService.UpdateAllocation(c.Request.Context(), businessID, c.Param("allocationID"), req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, allocation)
}

// ListAllocations godoc
// @Summary List a product's cost allocations
// @Tags costing
// @Produce json
// @Security BearerAuth
// @Param productID query string true "Product ID"
// @Success 200 {array} domain.ProductCostAllocation
// @Router /cost-allocations [get]
func (h *CostingHandler) ListAllocations(c *gin.Context) {
	_, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}
	productID := c.Query("productID")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productID query parameter is required"})
		return
	}
	allocations, err := h.costingService.ListAllocations(c.Request.Context(), businessID, productID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, allocations)
}

// CreateAsset godoc
// @Summary Register a fixed-cost asset against a category
// @Tags costing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAssetRequest true "Asset payload"
// @Success 201 {object} dto.AssetResponse
// @Failure 409 {object} map[string]string
// @Router /assets [post]
func (h *CostingHandler) CreateAsset(c *gin.Context) {
	userID, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}

	var req dto.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	asset, err := h.costingService.CreateAsset(c.Request.Context(), businessID, req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAssetResponse(asset))
}

// ListAssets godoc
// @Summary List the business's fixed-cost assets
// @Tags costing
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.AssetResponse
// @Router /assets [get]
func (h *CostingHandler) ListAssets(c *gin.Context) {
	_, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}
	assets, err := h.costingService.ListAssets(c.Request.Context(), businessID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	resp := make([]dto.AssetResponse, 0, len(assets))
	for i := range assets {
		resp = append(resp, dto.ToAssetResponse(&assets[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// ListCogsAccounts godoc
// @Summary List the business's COGS pool balances
// @Tags costing
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CogsAccountResponse
// @Router /cogs-accounts [get]
func (h *CostingHandler) ListCogsAccounts(c *gin.Context) {
	_, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}
	pools, err := h.costingService.ListCogsAccounts(c.Request.Context(), businessID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	resp := make([]dto.CogsAccountResponse, 0, len(pools))
	for i := range pools {
		resp = append(resp, dto.ToCogsAccountResponse(&pools[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// PayoutCogs godoc
// @Summary Pay an external obligation out of a COGS pool
// @Tags costing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CogsPayoutRequest true "Payout payload"
// @Success 201 {object} dto.TransactionResponse
// @Failure 422 {object} map[string]string
// @Router /cogs-accounts/payout [post]
func (h *CostingHandler) PayoutCogs(c *gin.Context) {
	userID, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}

	var req dto.CogsPayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txn, err := h.costingService.PayoutCogs(c.Request.Context(), businessID, req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}
