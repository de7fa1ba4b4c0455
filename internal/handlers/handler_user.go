package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/dto"
	"github.com/SscSPs/splitledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// userHandler handles the caller's contacts and their links to real accounts.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{userService: us}
}

func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users")
	{
		users.POST("", h.createUser)
		users.GET("", h.listUsers)
		users.GET("/:userID", h.getUser)
		users.PUT("/:userID/connection", h.connectUser)
		users.DELETE("/:userID/connection", h.disconnectUser)
	}
}

// createUser godoc
// @Summary Add a contact
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "Contact details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	callerID, ok := accountID(c)
	if !ok {
		return
	}
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), callerID, req)
	if err != nil {
		respondWithError(c, err, "Failed to create user")
		return
	}

	logger.Info("User created", slog.String("user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List contacts
// @Description Lists the caller's contacts, including the self user.
// @Tags users
// @Produce json
// @Success 200 {object} dto.ListUsersResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	callerID, ok := accountID(c)
	if !ok {
		return
	}
	users, err := h.userService.ListUsers(c.Request.Context(), callerID)
	if err != nil {
		respondWithError(c, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, dto.ToListUserResponse(users))
}

// getUser godoc
// @Summary Get a contact
// @Tags users
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{userID} [get]
func (h *userHandler) getUser(c *gin.Context) {
	callerID, ok := accountID(c)
	if !ok {
		return
	}
	user, err := h.userService.GetUser(c.Request.Context(), callerID, c.Param("userID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// connectUser godoc
// @Summary Link a contact to an account
// @Description Links the contact to the account registered with the given email. Debts with the contact sync once the other account links back.
// @Tags users
// @Accept json
// @Produce json
// @Param userID path string true "User ID"
// @Param connection body dto.ConnectUserRequest true "Account to link"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Another contact is linked to this account"
// @Security BearerAuth
// @Router /users/{userID}/connection [put]
func (h *userHandler) connectUser(c *gin.Context) {
	callerID, ok := accountID(c)
	if !ok {
		return
	}
	var req dto.ConnectUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userService.ConnectUser(c.Request.Context(), callerID, c.Param("userID"), req)
	if err != nil {
		respondWithError(c, err, "Failed to connect user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// disconnectUser godoc
// @Summary Unlink a contact
// @Tags users
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{userID}/connection [delete]
func (h *userHandler) disconnectUser(c *gin.Context) {
	callerID, ok := accountID(c)
	if !ok {
		return
	}
	user, err := h.userService.DisconnectUser(c.Request.Context(), callerID, c.Param("userID"))
	if err != nil {
		respondWithError(c, err, "Failed to disconnect user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
