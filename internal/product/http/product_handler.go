// Package http provides HTTP handlers for the product catalog.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/storefront/internal/auth/http"
	"github.com/allisson/storefront/internal/httputil"
	"github.com/allisson/storefront/internal/product/http/dto"
	"github.com/allisson/storefront/internal/product/usecase"
	sellerDomain "github.com/allisson/storefront/internal/seller/domain"
	customValidation "github.com/allisson/storefront/internal/validation"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	productUseCase usecase.ProductUseCase
	logger         *slog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productUseCase usecase.ProductUseCase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
		logger:         logger,
	}
}

// ListHandler lists products with pagination.
// GET /v1/products?offset=0&limit=50
func (h *ProductHandler) ListHandler(c *gin.Context) {
	page, err := httputil.ParsePage(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	products, err := h.productUseCase.List(c.Request.Context(), page.Offset, page.Limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapProductsToListResponse(products))
}

// GetHandler retrieves a product by ID.
// GET /v1/products/:id
func (h *ProductHandler) GetHandler(c *gin.Context) {
	productID, ok := h.productID(c)
	if !ok {
		return
	}

	product, err := h.productUseCase.Get(c.Request.Context(), productID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapProductToResponse(product))
}

// CreateHandler adds a product owned by the authenticated seller.
// POST /v1/products - Returns 201 Created.
func (h *ProductHandler) CreateHandler(c *gin.Context) {
	seller, ok := h.seller(c)
	if !ok {
		return
	}

	req, ok := h.bindProduct(c)
	if !ok {
		return
	}

	product, err := h.productUseCase.Create(c.Request.Context(), seller.ID, req.ToProductInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapProductToResponse(product))
}

// UpdateHandler replaces a product of the authenticated seller.
// PUT /v1/products/:id - Returns 200 OK; 403 when the product belongs to someone else.
func (h *ProductHandler) UpdateHandler(c *gin.Context) {
	seller, ok := h.seller(c)
	if !ok {
		return
	}

	productID, ok := h.productID(c)
	if !ok {
		return
	}

	req, ok := h.bindProduct(c)
	if !ok {
		return
	}

	product, err := h.productUseCase.Update(c.Request.Context(), seller.ID, productID, req.ToProductInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapProductToResponse(product))
}

// DeleteHandler removes a product of the authenticated seller.
// DELETE /v1/products/:id - Returns 204 No Content; 404 when missing.
func (h *ProductHandler) DeleteHandler(c *gin.Context) {
	seller, ok := h.seller(c)
	if !ok {
		return
	}

	productID, ok := h.productID(c)
	if !ok {
		return
	}

	if err := h.productUseCase.Delete(c.Request.Context(), seller.ID, productID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListMineHandler lists the authenticated seller's products.
// GET /v1/sellers/me/products?offset=0&limit=50
func (h *ProductHandler) ListMineHandler(c *gin.Context) {
	seller, ok := h.seller(c)
	if !ok {
		return
	}

	page, err := httputil.ParsePage(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	products, err := h.productUseCase.ListBySeller(c.Request.Context(), seller.ID, page.Offset, page.Limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapProductsToListResponse(products))
}

func (h *ProductHandler) productID(c *gin.Context) (uuid.UUID, bool) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid product ID format: must be a valid UUID"),
			h.logger)
		return uuid.Nil, false
	}
	return productID, true
}

func (h *ProductHandler) bindProduct(c *gin.Context) (*dto.ProductRequest, bool) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return nil, false
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return nil, false
	}
	return &req, true
}

// seller returns the active seller stored by RequireActiveSeller.
func (h *ProductHandler) seller(c *gin.Context) (*sellerDomain.Seller, bool) {
	seller, ok := authHTTP.GetSeller(c.Request.Context())
	if !ok {
		h.logger.Error("seller missing from request context", slog.String("path", c.FullPath()))
		c.AbortWithStatus(http.StatusInternalServerError)
		return nil, false
	}
	return seller, true
}
