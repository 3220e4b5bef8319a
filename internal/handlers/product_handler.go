package handlers

import (
	"net/http"

	portssvc "github.com/bizbookhq/bizbook_backend/internal/core/ports/services"
	"github.com/bizbookhq/bizbook_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// ProductHandler handles the product catalog endpoints.
type ProductHandler struct {
	productService portssvc.ProductSvcFacade
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService portssvc.ProductSvcFacade) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProduct godoc
// @Summary Add a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProductRequest true "Product payload"
// @Success 201 {object} dto.ProductResponse
// @Router /products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	userID, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), businessID, req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

// UpdateProduct godoc
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param productID path string true "Product ID"
// @Param request body dto.UpdateProductRequest true "Update payload"
// @Success 200 {object} dto.ProductResponse
// @Failure 422 {object} map[string]string
// @Router /products/{productID} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	userID, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), businessID, c.Param("productID"), req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// GetProduct godoc
// @Summary Get a product by ID
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param productID path string true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} map[string]string
// @Router /products/{productID} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	_, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}
	product, err := h.productService.GetProduct(c.Request.Context(), businessID, c.Param("productID"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// ListProducts godoc
// @Summary List the business's products
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.ProductResponse
// @Router /products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	_, businessID, ok := identityFromContext(c)
	if !ok {
		return
	}
	limit, offset := pageParams(c)
	products, err := h.productService.ListProducts(c.Request.Context(), businessID, limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	resp := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, dto.ToProductResponse(&products[i]))
	}
	c.JSON(http.StatusOK, resp)
}
