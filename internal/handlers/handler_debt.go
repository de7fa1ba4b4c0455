package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/splitledger/internal/apperrors"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/dto"
	"github.com/SscSPs/splitledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// debtHandler handles HTTP requests related to debts.
type debtHandler struct {
	debtService portssvc.DebtSvcFacade
	syncService portssvc.SyncStatusSvc
}

func newDebtHandler(ds portssvc.DebtSvcFacade, ss portssvc.SyncStatusSvc) *debtHandler {
	return &debtHandler{debtService: ds, syncService: ss}
}

// registerDebtRoutes registers routes related to debts.
func registerDebtRoutes(rg *gin.RouterGroup, debtService portssvc.DebtSvcFacade, syncService portssvc.SyncStatusSvc) {
	h := newDebtHandler(debtService, syncService)

	debts := rg.Group("/debts")
	{
		debts.POST("", h.createDebt)
		debts.GET("", h.listDebts)
		debts.GET("/summary", h.summary)

		debtItem := debts.Group("/:debtID")
		{
			debtItem.GET("", h.getDebt)
			debtItem.PATCH("", h.updateDebt)
			debtItem.DELETE("", h.deleteDebt)
			debtItem.GET("/foreign", h.getForeignDebt)
			debtItem.GET("/status", h.getStatus)
			debtItem.POST("/lock", h.lockDebt)
			debtItem.POST("/unlock", h.unlockDebt)
		}
	}
}

// createDebt godoc
// @Summary Record a debt
// @Description Records a debt with one of the caller's contacts. A positive amount means the contact owes the caller.
// @Tags debts
// @Accept json
// @Produce json
// @Param debt body dto.CreateDebtRequest true "Debt details"
// @Success 201 {object} dto.CreateDebtResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /debts [post]
func (h *debtHandler) createDebt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	callerID, ok := accountID(c)
	if !ok {
		return
	}
	var req dto.CreateDebtRequest
	if !bindJSON(c, &req) {
		return
	}

	debt, err := h.debtService.CreateDebt(c.Request.Context(), callerID, req)
	if err != nil {
		respondWithError(c, err, "Failed to create debt")
		return
	}

	logger.Info("Debt created", slog.String("debt_id", debt.DebtID))
	c.JSON(http.StatusCreated, dto.CreateDebtResponse{DebtID: debt.DebtID})
}

// listDebts godoc
// @Summary List debts
// @Description Lists the caller's debts, newest first, using token-based pagination.
// @Tags debts
// @Produce json
// @Param userId query string false "Only debts with this contact"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Token of the next page"
// @Success 200 {object} dto.ListDebtsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /debts [get]
func (h *debtHandler) listDebts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	callerID, ok := accountID(c)
	if !ok {
		return
	}
	var params dto.ListDebtsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error(), Code: apperrors.Code(apperrors.ErrBadRequest)})
		return
	}

	debts, nextToken, err := h.debtService.ListDebts(c.Request.Context(), callerID, params)
	if err != nil {
		respondWithError(c, err, "Failed to list debts")
		return
	}

	c.JSON(http.StatusOK, dto.ListDebtsResponse{Debts: dto.ToDebtResponses(debts), NextToken: nextToken})
}

// summary godoc
// @Summary Summarize debts
// @Description Net balance per contact and currency.
// @Tags debts
// @Produce json
// @Success 200 {object} dto.DebtsSummaryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /debts/summary [get]
func (h *debtHandler) summary(c *gin.Context) {
	callerID, ok := accountID(c)
	if !ok {
		return
	}
	summary, err := h.debtService.Summary(c.Request.Context(), callerID)
	if err != nil {
		respondWithError(c, err, "Failed to summarize debts")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getDebt godoc
// @Summary Get a debt
// @Description Returns the caller's debt together with its sync status.
// @Tags debts
// @Produce json
// @Param debtID path string true "Debt ID"
// @Success 200 {object} dto.DebtResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /debts/{debtID} [get]
func (h *debtHandler) getDebt(c *gin.Context) {
	callerID, ok := accountID(c)
	if !ok {
		return
	}
	view, err := h.debtService.GetDebt(c.Request.Context(), callerID, c.Param("debtID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve debt")
		return
	}
	c.JSON(http.StatusOK, dto.ToDebtViewResponse(view))
}

// getForeignDebt godoc
// @Summary Get a debt recorded by the counterparty
// @Description Returns a debt owned by a connected account as the caller sees it. The amount is negated and the note is not shared.
// @Tags debts
// @Produce json
// @Param debtID path string true "Debt ID"
// @Success 200 {object} dto.DebtResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /debts/{debtID}/foreign [get]
func (h *debtHandler) getForeignDebt(c *gin.Context) {
	callerID, ok := accountID(c)
	if !ok {
		return
	}
	view, err := h.debtService.GetForeignDebt(c.Request.Context(), callerID, c.Param("debtID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve debt")
		return
	}
	c.JSON(http.StatusOK, dto.ToDebtViewResponse(view))
}

// getStatus godoc
// @Summary Get the sync status of a debt
// @Tags debts
// @Produce json
// @Param debtID path string true "Debt ID"
// @Success 200 {object} domain.SyncStatus
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /debts/{debtID}/status [get]
func (h *debtHandler) getStatus(c *gin.Context) {
	callerID, ok := accountID(c)
	if !ok {
		return
	}
	status, err := h.syncService.ResolveStatus(c.Request.Context(), callerID, c.Param("debtID"))
	if err != nil {
		respondWithError(c, err, "Failed to resolve sync status")
		return
	}
	c.JSON(http.StatusOK, status)
}

// updateDebt godoc
// @Summary Update a debt
// @Description Applies the given fields. A locked debt only accepts note changes.
// @Tags debts
// @Accept json
// @Produce json
// @Param debtID path string true "Debt ID"
// @Param debt body dto.UpdateDebtRequest true "Fields to update"
// @Success 200 {object} dto.DebtResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Debt is locked"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /debts/{debtID} [patch]
func (h *debtHandler) updateDebt(c *gin.Context) {
	callerID, ok := accountID(c)
	if !ok {
		return
	}
	var req dto.UpdateDebtRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.debtService.UpdateDebt(c.Request.Context(), callerID, c.Param("debtID"), req)
	if err != nil {
		respondWithError(c, err, "Failed to update debt")
		return
	}
	c.JSON(http.StatusOK, dto.ToDebtViewResponse(view))
}

// deleteDebt godoc
// @Summary Delete a debt
// @Description Deletes the caller's row only. The counterparty's copy is left untouched.
// @Tags debts
// @Param debtID path string true "Debt ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /debts/{debtID} [delete]
func (h *debtHandler) deleteDebt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	callerID, ok := accountID(c)
	if !ok {
		return
	}
	debtID := c.Param("debtID")
	if err := h.debtService.DeleteDebt(c.Request.Context(), callerID, debtID); err != nil {
		respondWithError(c, err, "Failed to delete debt")
		return
	}
	logger.Info("Debt deleted", slog.String("debt_id", debtID))
	c.Status(http.StatusNoContent)
}

// lockDebt godoc
// @Summary Lock a debt
// @Description Marks the debt as ready for comparison with the counterparty's copy.
// @Tags debts
// @Produce json
// @Param debtID path string true "Debt ID"
// @Success 200 {object} dto.DebtResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /debts/{debtID}/lock [post]
func (h *debtHandler) lockDebt(c *gin.Context) {
	callerID, ok := accountID(c)
	if !ok {
		return
	}
	view, err := h.debtService.LockDebt(c.Request.Context(), callerID, c.Param("debtID"))
	if err != nil {
		respondWithError(c, err, "Failed to lock debt")
		return
	}
	c.JSON(http.StatusOK, dto.ToDebtViewResponse(view))
}

// unlockDebt godoc
// @Summary Unlock a debt
// @Description Makes the debt editable again and withdraws any pending sync proposal for it.
// @Tags debts
// @Produce json
// @Param debtID path string true "Debt ID"
// @Success 200 {object} dto.DebtResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /debts/{debtID}/unlock [post]
func (h *debtHandler) unlockDebt(c *gin.Context) {
	callerID, ok := accountID(c)
	if !ok {
		return
	}
	view, err := h.debtService.UnlockDebt(c.Request.Context(), callerID, c.Param("debtID"))
	if err != nil {
		respondWithError(c, err, "Failed to unlock debt")
		return
	}
	c.JSON(http.StatusOK, dto.ToDebtViewResponse(view))
}
