// Package http provides HTTP handlers for PAN tokenization.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/pantoken/internal/auth/http"
	apperrors "github.com/allisson/pantoken/internal/errors"
	"github.com/allisson/pantoken/internal/httputil"
	tokenizationDomain "github.com/allisson/pantoken/internal/tokenization/domain"
	"github.com/allisson/pantoken/internal/tokenization/http/dto"
	tokenizationUseCase "github.com/allisson/pantoken/internal/tokenization/usecase"
	customValidation "github.com/allisson/pantoken/internal/validation"
)

// TokenizationHandler handles HTTP requests for tokenization operations.
type TokenizationHandler struct {
	tokenizationUseCase tokenizationUseCase.TokenizationUseCase
	logger              *slog.Logger
}

// NewTokenizationHandler creates a new tokenization handler with required dependencies.
func NewTokenizationHandler(
	tokenizationUseCase tokenizationUseCase.TokenizationUseCase,
	logger *slog.Logger,
) *TokenizationHandler {
	return &TokenizationHandler{
		tokenizationUseCase: tokenizationUseCase,
		logger:              logger,
	}
}

// TokenizeHandler exchanges a card number for a token.
// POST /v1/tokens - Returns 201 Created with token, masked PAN and creation time.
func (h *TokenizationHandler) TokenizeHandler(c *gin.Context) {
	details, ok := h.tokenize(c)
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, dto.MapTokenDetailsToResponse(details))
}

// LegacyEncryptHandler serves the unversioned POST /encrypt route.
// Returns 200 OK with token and masked PAN.
func (h *TokenizationHandler) LegacyEncryptHandler(c *gin.Context) {
	details, ok := h.tokenize(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.LegacyEncryptResponse{
		Token:     string(details.Token),
		MaskedPAN: string(details.MaskedPAN),
	})
}

// DescribeHandler returns the masked PAN and creation time for a token.
// GET /v1/tokens/:token and GET /token/:token - Returns 200 OK.
func (h *TokenizationHandler) DescribeHandler(c *gin.Context) {
	details, err := h.tokenizationUseCase.Describe(c.Request.Context(), c.Param("token"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTokenDetailsToResponse(details))
}

// RevealHandler returns the plaintext card number behind a token.
// POST /v1/tokens/reveal - Requires the admin credential (AdminCredentialMiddleware).
func (h *TokenizationHandler) RevealHandler(c *gin.Context) {
	token, pan, ok := h.reveal(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.MapPANToRevealResponse(token, pan))
}

// LegacyDecryptHandler serves the unversioned POST /decrypt route.
// Returns 200 OK with PAN and masked PAN.
func (h *TokenizationHandler) LegacyDecryptHandler(c *gin.Context) {
	_, pan, ok := h.reveal(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.MapPANToRevealResponse("", pan))
}

func (h *TokenizationHandler) tokenize(c *gin.Context) (*tokenizationDomain.TokenDetails, bool) {
	var req dto.TokenizeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return nil, false
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return nil, false
	}

	details, err := h.tokenizationUseCase.Tokenize(c.Request.Context(), req.PAN)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return nil, false
	}

	return details, true
}

func (h *TokenizationHandler) reveal(c *gin.Context) (string, tokenizationDomain.PAN, bool) {
	credential, ok := authHTTP.GetAdminCredential(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return "", "", false
	}

	// A rejected body is reported only to an authorized caller; everyone else gets 401.
	var req dto.RevealRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		if !h.authorized(c, credential) {
			return "", "", false
		}
		httputil.HandleBadRequestGin(c, err, h.logger)
		return "", "", false
	}

	if err := req.Validate(); err != nil {
		if !h.authorized(c, credential) {
			return "", "", false
		}
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return "", "", false
	}

	pan, err := h.tokenizationUseCase.Reveal(c.Request.Context(), req.Token, credential)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return "", "", false
	}

	h.logger.Info("pan revealed",
		slog.String("token", req.Token),
		slog.String("masked_pan", string(tokenizationDomain.MaskPAN(pan))),
		slog.String("client_ip", c.ClientIP()),
	)

	return req.Token, pan, true
}

func (h *TokenizationHandler) authorized(c *gin.Context, credential string) bool {
	if err := h.tokenizationUseCase.Authorize(credential); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return false
	}
	return true
}
