package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/dto"
	"github.com/SscSPs/splitledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// syncHandler exposes the sync intention transitions. Every route is keyed
// by the proposer's debt id.
type syncHandler struct {
	syncService portssvc.SyncSvcFacade
}

func newSyncHandler(ss portssvc.SyncSvcFacade) *syncHandler {
	return &syncHandler{syncService: ss}
}

func registerSyncRoutes(rg *gin.RouterGroup, syncService portssvc.SyncSvcFacade) {
	h := newSyncHandler(syncService)

	intentions := rg.Group("/sync-intentions")
	{
		intentions.GET("", h.listIntentions)
		intentions.PUT("/:debtID", h.proposeSync)
		intentions.DELETE("/:debtID", h.cancelSync)
		intentions.POST("/:debtID/accept", h.acceptSync)
		intentions.POST("/:debtID/reject", h.rejectSync)
	}
}

// listIntentions godoc
// @Summary List pending sync intentions
// @Description Intentions proposed by the caller (outbound) and to the caller (inbound).
// @Tags sync
// @Produce json
// @Success 200 {object} dto.ListSyncIntentionsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /sync-intentions [get]
func (h *syncHandler) listIntentions(c *gin.Context) {
	callerID, ok := accountID(c)
	if !ok {
		return
	}
	intentions, err := h.syncService.ListIntentions(c.Request.Context(), callerID)
	if err != nil {
		respondWithError(c, err, "Failed to list sync intentions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListSyncIntentionsResponse(intentions))
}

// proposeSync godoc
// @Summary Propose a sync
// @Description Asks the counterparty to take over the values of the caller's locked debt.
// @Tags sync
// @Accept json
// @Produce json
// @Param debtID path string true "Caller's debt ID"
// @Param intention body dto.ProposeSyncRequest true "Locked timestamp the caller last saw"
// @Success 200 {object} dto.ProposeSyncResponse
// @Failure 400 {object} ErrorResponse "Already in sync"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "An intention is already pending"
// @Failure 412 {object} ErrorResponse "Debt is unlocked, changed, or the contact is not connected"
// @Security BearerAuth
// @Router /sync-intentions/{debtID} [put]
func (h *syncHandler) proposeSync(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	callerID, ok := accountID(c)
	if !ok {
		return
	}
	var req dto.ProposeSyncRequest
	if !bindJSON(c, &req) {
		return
	}

	debtID := c.Param("debtID")
	lockedTimestamp, err := h.syncService.ProposeSync(c.Request.Context(), callerID, debtID, req.LockedTimestamp)
	if err != nil {
		respondWithError(c, err, "Failed to propose sync")
		return
	}

	logger.Info("Sync proposed", slog.String("debt_id", debtID))
	c.JSON(http.StatusOK, dto.ProposeSyncResponse{LockedTimestamp: lockedTimestamp})
}

// cancelSync godoc
// @Summary Withdraw a sync proposal
// @Tags sync
// @Produce json
// @Param debtID path string true "Caller's debt ID"
// @Success 200 {object} domain.SyncStatus
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sync-intentions/{debtID} [delete]
func (h *syncHandler) cancelSync(c *gin.Context) {
	callerID, ok := accountID(c)
	if !ok {
		return
	}
	status, err := h.syncService.CancelSync(c.Request.Context(), callerID, c.Param("debtID"))
	if err != nil {
		respondWithError(c, err, "Failed to cancel sync")
		return
	}
	c.JSON(http.StatusOK, status)
}

// acceptSync godoc
// @Summary Accept a sync proposal
// @Description Overwrites the caller's copy with the proposer's values, creating it when missing.
// @Tags sync
// @Accept json
// @Produce json
// @Param debtID path string true "Proposer's debt ID"
// @Param intention body dto.AcceptSyncRequest true "Locked timestamp of the proposal"
// @Success 200 {object} dto.DebtResponse
// @Failure 404 {object} ErrorResponse "No such proposal, or it was superseded"
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /sync-intentions/{debtID}/accept [post]
func (h *syncHandler) acceptSync(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	callerID, ok := accountID(c)
	if !ok {
		return
	}
	var req dto.AcceptSyncRequest
	if !bindJSON(c, &req) {
		return
	}

	debt, err := h.syncService.AcceptSync(c.Request.Context(), callerID, c.Param("debtID"), req.LockedTimestamp)
	if err != nil {
		respondWithError(c, err, "Failed to accept sync")
		return
	}

	logger.Info("Sync accepted", slog.String("debt_id", debt.DebtID))
	c.JSON(http.StatusOK, dto.ToDebtResponse(debt))
}

// rejectSync godoc
// @Summary Reject a sync proposal
// @Tags sync
// @Produce json
// @Param debtID path string true "Proposer's debt ID"
// @Success 200 {object} domain.SyncStatus
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sync-intentions/{debtID}/reject [post]
func (h *syncHandler) rejectSync(c *gin.Context) {
	callerID, ok := accountID(c)
	if !ok {
		return
	}
	status, err := h.syncService.RejectSync(c.Request.Context(), callerID, c.Param("debtID"))
	if err != nil {
		respondWithError(c, err, "Failed to reject sync")
		return
	}
	c.JSON(http.StatusOK, status)
}
