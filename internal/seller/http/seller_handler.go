// Package http provides HTTP handlers for seller registration and profile.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/storefront/internal/auth/http"
	"github.com/allisson/storefront/internal/httputil"
	"github.com/allisson/storefront/internal/seller/http/dto"
	"github.com/allisson/storefront/internal/seller/usecase"
)

// SellerHandler handles seller-related HTTP requests.
type SellerHandler struct {
	sellerUseCase usecase.SellerUseCase
	logger        *slog.Logger
}

// NewSellerHandler creates a new SellerHandler.
func NewSellerHandler(sellerUseCase usecase.SellerUseCase, logger *slog.Logger) *SellerHandler {
	return &SellerHandler{
		sellerUseCase: sellerUseCase,
		logger:        logger,
	}
}

// RegisterHandler registers a new seller.
// POST /v1/sellers - Returns 201 Created; a taken username returns 409 Conflict.
func (h *SellerHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	seller, err := h.sellerUseCase.Register(c.Request.Context(), dto.ToRegisterSellerInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSellerResponse(seller))
}

// MeHandler returns the seller behind the bearer token.
// GET /v1/sellers/me - Requires a bearer token of an active seller.
func (h *SellerHandler) MeHandler(c *gin.Context) {
	seller, ok := authHTTP.GetSeller(c.Request.Context())
	if !ok {
		// RequireActiveSeller did not run for this route.
		h.logger.Error("seller missing from request context", slog.String("path", c.FullPath()))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.ToSellerResponse(seller))
}
