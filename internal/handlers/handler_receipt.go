package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/splitledger/internal/core/domain"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/dto"
	"github.com/SscSPs/splitledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// receiptHandler handles receipts and the debts derived from them.
type receiptHandler struct {
	receiptService portssvc.ReceiptSvcFacade
	debtService    portssvc.DebtReaderSvc
}

func newReceiptHandler(rs portssvc.ReceiptSvcFacade, ds portssvc.DebtReaderSvc) *receiptHandler {
	return &receiptHandler{receiptService: rs, debtService: ds}
}

func registerReceiptRoutes(rg *gin.RouterGroup, receiptService portssvc.ReceiptSvcFacade, debtService portssvc.DebtReaderSvc) {
	h := newReceiptHandler(receiptService, debtService)

	receipts := rg.Group("/receipts")
	{
		receipts.POST("", h.createReceipt)
		receipts.GET("", h.listReceipts)

		receiptItem := receipts.Group("/:receiptID")
		{
			receiptItem.GET("", h.getReceipt)
			receiptItem.POST("/items", h.addItem)
			receiptItem.POST("/lock", h.lockReceipt)
			receiptItem.POST("/unlock", h.unlockReceipt)
			receiptItem.POST("/propagate-debts", h.propagateDebts)
			receiptItem.GET("/debts", h.getDebtsByReceipt)
			receiptItem.PUT("/debts/:userID", h.updateReceiptDebt)
		}
	}
}

// createReceipt godoc
// @Summary Create a receipt
// @Tags receipts
// @Accept json
// @Produce json
// @Param receipt body dto.CreateReceiptRequest true "Receipt details"
// @Success 201 {object} dto.ReceiptResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /receipts [post]
func (h *receiptHandler) createReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	callerID, ok := accountID(c)
	if !ok {
		return
	}
	var req dto.CreateReceiptRequest
	if !bindJSON(c, &req) {
		return
	}

	receipt, err := h.receiptService.CreateReceipt(c.Request.Context(), callerID, req)
	if err != nil {
		respondWithError(c, err, "Failed to create receipt")
		return
	}

	logger.Info("Receipt created", slog.String("receipt_id", receipt.ReceiptID))
	c.JSON(http.StatusCreated, dto.ToReceiptResponse(receipt))
}

// listReceipts godoc
// @Summary List receipts
// @Tags receipts
// @Produce json
// @Success 200 {array} dto.ReceiptResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /receipts [get]
func (h *receiptHandler) listReceipts(c *gin.Context) {
	callerID, ok := accountID(c)
	if !ok {
		return
	}
	receipts, err := h.receiptService.ListReceipts(c.Request.Context(), callerID)
	if err != nil {
		respondWithError(c, err, "Failed to list receipts")
		return
	}
	c.JSON(http.StatusOK, dto.ToReceiptResponses(receipts))
}

// getReceipt godoc
// @Summary Get a receipt
// @Tags receipts
// @Produce json
// @Param receiptID path string true "Receipt ID"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /receipts/{receiptID} [get]
func (h *receiptHandler) getReceipt(c *gin.Context) {
	callerID, ok := accountID(c)
	if !ok {
		return
	}
	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), callerID, c.Param("receiptID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve receipt")
		return
	}
	c.JSON(http.StatusOK, dto.ToReceiptResponse(receipt))
}

// addItem godoc
// @Summary Add an item to a receipt
// @Tags receipts
// @Accept json
// @Produce json
// @Param receiptID path string true "Receipt ID"
// @Param item body dto.AddReceiptItemRequest true "Item details"
// @Success 201 {object} dto.ReceiptResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Receipt is locked"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /receipts/{receiptID}/items [post]
func (h *receiptHandler) addItem(c *gin.Context) {
	callerID, ok := accountID(c)
	if !ok {
		return
	}
	var req dto.AddReceiptItemRequest
	if !bindJSON(c, &req) {
		return
	}
	receipt, err := h.receiptService.AddItem(c.Request.Context(), callerID, c.Param("receiptID"), req)
	if err != nil {
		respondWithError(c, err, "Failed to add receipt item")
		return
	}
	c.JSON(http.StatusCreated, dto.ToReceiptResponse(receipt))
}

// lockReceipt godoc
// @Summary Lock a receipt
// @Description Freezes the items so that debts can be propagated.
// @Tags receipts
// @Produce json
// @Param receiptID path string true "Receipt ID"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /receipts/{receiptID}/lock [post]
func (h *receiptHandler) lockReceipt(c *gin.Context) {
	callerID, ok := accountID(c)
	if !ok {
		return
	}
	receipt, err := h.receiptService.LockReceipt(c.Request.Context(), callerID, c.Param("receiptID"))
	if err != nil {
		respondWithError(c, err, "Failed to lock receipt")
		return
	}
	c.JSON(http.StatusOK, dto.ToReceiptResponse(receipt))
}

// unlockReceipt godoc
// @Summary Unlock a receipt
// @Tags receipts
// @Produce json
// @Param receiptID path string true "Receipt ID"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /receipts/{receiptID}/unlock [post]
func (h *receiptHandler) unlockReceipt(c *gin.Context) {
	callerID, ok := accountID(c)
	if !ok {
		return
	}
	receipt, err := h.receiptService.UnlockReceipt(c.Request.Context(), callerID, c.Param("receiptID"))
	if err != nil {
		respondWithError(c, err, "Failed to unlock receipt")
		return
	}
	c.JSON(http.StatusOK, dto.ToReceiptResponse(receipt))
}

// propagateDebts godoc
// @Summary Propagate a receipt into debts
// @Description Allocates the locked receipt and upserts one debt per participant, mirrored into the accounts of connected participants.
// @Tags receipts
// @Accept json
// @Produce json
// @Param receiptID path string true "Receipt ID"
// @Param propagation body dto.PropagateDebtsRequest true "Locked timestamp of the receipt"
// @Success 200 {array} dto.PropagatedDebtResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 412 {object} ErrorResponse "Receipt is unlocked or changed"
// @Security BearerAuth
// @Router /receipts/{receiptID}/propagate-debts [post]
func (h *receiptHandler) propagateDebts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	callerID, ok := accountID(c)
	if !ok {
		return
	}
	var req dto.PropagateDebtsRequest
	if !bindJSON(c, &req) {
		return
	}

	receiptID := c.Param("receiptID")
	results, err := h.receiptService.PropagateDebts(c.Request.Context(), callerID, receiptID, req.LockedTimestamp)
	if err != nil {
		respondWithError(c, err, "Failed to propagate debts")
		return
	}

	logger.Info("Receipt debts propagated", slog.String("receipt_id", receiptID), slog.Int("count", len(results)))
	c.JSON(http.StatusOK, dto.ToPropagatedDebtResponses(results))
}

// updateReceiptDebt godoc
// @Summary Re-propagate one participant
// @Tags receipts
// @Produce json
// @Param receiptID path string true "Receipt ID"
// @Param userID path string true "Participant user ID"
// @Success 200 {object} dto.PropagatedDebtResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 412 {object} ErrorResponse
// @Security BearerAuth
// @Router /receipts/{receiptID}/debts/{userID} [put]
func (h *receiptHandler) updateReceiptDebt(c *gin.Context) {
	callerID, ok := accountID(c)
	if !ok {
		return
	}
	result, err := h.receiptService.UpdateReceiptDebt(c.Request.Context(), callerID, c.Param("receiptID"), c.Param("userID"))
	if err != nil {
		respondWithError(c, err, "Failed to update receipt debt")
		return
	}
	c.JSON(http.StatusOK, dto.ToPropagatedDebtResponses([]domain.PropagatedDebt{*result})[0])
}

// getDebtsByReceipt godoc
// @Summary List the debts of a receipt
// @Description The caller's rows for the receipt or, for a participant of someone else's receipt, the owner's row about the caller.
// @Tags receipts
// @Produce json
// @Param receiptID path string true "Receipt ID"
// @Success 200 {array} dto.DebtResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /receipts/{receiptID}/debts [get]
func (h *receiptHandler) getDebtsByReceipt(c *gin.Context) {
	callerID, ok := accountID(c)
	if !ok {
		return
	}
	views, err := h.debtService.GetDebtsByReceiptID(c.Request.Context(), callerID, c.Param("receiptID"))
	if err != nil {
		respondWithError(c, err, "Failed to list receipt debts")
		return
	}
	res := make([]dto.DebtResponse, len(views))
	for i := range views {
		res[i] = dto.ToDebtViewResponse(&views[i])
	}
	c.JSON(http.StatusOK, res)
}
