package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/allisson/storefront/internal/auth/http/dto"
	authUseCase "github.com/allisson/storefront/internal/auth/usecase"
	apperrors "github.com/allisson/storefront/internal/errors"
	"github.com/allisson/storefront/internal/httputil"
	customValidation "github.com/allisson/storefront/internal/validation"
)

const incorrectCredentialsDetail = "Incorrect username or password"

// TokenHandler handles HTTP requests for token operations.
type TokenHandler struct {
	authenticator authUseCase.Authenticator
	logger        *slog.Logger
}

// NewTokenHandler creates a new token handler with required dependencies.
func NewTokenHandler(authenticator authUseCase.Authenticator, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{
		authenticator: authenticator,
		logger:        logger,
	}
}

// IssueTokenHandler logs a seller in and returns an access token.
// POST /v1/token - No authentication required (this is the authentication endpoint).
// Accepts application/json or application/x-www-form-urlencoded (OAuth2 password grant).
// Returns 200 OK with {access_token, token_type, expires_at}; bad credentials return 401
// with WWW-Authenticate: Bearer and a {"detail": ...} body.
func (h *TokenHandler) IssueTokenHandler(c *gin.Context) {
	var req dto.IssueTokenRequest

	var err error
	switch c.ContentType() {
	case binding.MIMEPOSTForm, binding.MIMEMultipartPOSTForm:
		err = c.ShouldBindWith(&req, binding.Form)
	default:
		err = c.ShouldBindJSON(&req)
	}
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.authenticator.Login(c.Request.Context(), req.Username, req.Password)
	if apperrors.Is(err, apperrors.ErrUnauthorized) {
		h.logger.Warn("login rejected", slog.String("username", req.Username))
		c.Header("WWW-Authenticate", "Bearer")
		httputil.AbortWithDetail(c, http.StatusUnauthorized, incorrectCredentialsDetail)
		return
	}
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.IssueTokenResponse{
		AccessToken: output.AccessToken,
		TokenType:   output.TokenType,
		ExpiresAt:   output.ExpiresAt,
	})
}
