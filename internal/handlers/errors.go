package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// respondWithError maps err onto its HTTP status. Client errors carry the
// service message; anything unexpected is logged and replaced by fallback.
func respondWithError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.HTTPStatus(err)

	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: fallback, Code: apperrors.Code(err)})
		return
	}

	logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, ErrorResponse{Error: err.Error(), Code: apperrors.Code(err)})
}

// bindJSON binds the request body and answers 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error(), Code: apperrors.Code(apperrors.ErrBadRequest)})
		return false
	}
	return true
}

// accountID returns the authenticated account or answers 401.
func accountID(c *gin.Context) (string, bool) {
	id, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Account ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized", Code: apperrors.Code(apperrors.ErrUnauthorized)})
		return "", false
	}
	return id, true
}
