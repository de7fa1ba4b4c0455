package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/dto"
	"github.com/SscSPs/splitledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles account registration and login.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(as portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{authService: as}
}

// registerAuthRoutes sets up the public authentication routes. loginLimit
// throttles credential guessing on top of the global limit.
func registerAuthRoutes(rg *gin.RouterGroup, authService portssvc.AuthSvcFacade, loginLimit gin.HandlerFunc) {
	h := newAuthHandler(authService)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", loginLimit, h.login)
	}
}

// register godoc
// @Summary Register a new account
// @Description Creates an account and its self user.
// @Tags auth
// @Accept json
// @Produce json
// @Param account body dto.RegisterRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "Failed to register account")
		return
	}

	logger.Info("Account registered", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// login godoc
// @Summary Log in
// @Description Exchanges credentials for a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, account, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, AccountID: account.AccountID})
}
