package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boostlane/panel/internal/bulkorder"
	domainErrors "github.com/boostlane/panel/internal/domain/errors"
	"github.com/boostlane/panel/internal/server/http/dto"
)

// WalletHandler manages wallet endpoints.
type WalletHandler struct {
	facade WalletFacade
}

// NewWalletHandler constructs WalletHandler.
func NewWalletHandler(facade WalletFacade) *WalletHandler {
	return &WalletHandler{facade: facade}
}

// Summary handles GET /api/wallet.
func (h *WalletHandler) Summary(c *gin.Context) {
	userID := CurrentUserID(c)
	summary, err := h.facade.Wallet(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.WalletResponse{
		Balance:  summary.Balance.StringFixed(bulkorder.DisplayPrecision),
		Spent:    summary.Spent.StringFixed(bulkorder.DisplayPrecision),
		Currency: summary.Currency,
	})
}

// TopUp handles POST /api/wallet/topup.
func (h *WalletHandler) TopUp(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.TopUpWallet(c.Request.Context(), userID, req.Amount); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidAmount):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

// History handles GET /api/wallet/transactions.
func (h *WalletHandler) History(c *gin.Context) {
	userID := CurrentUserID(c)
	transactions, err := h.facade.WalletHistory(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(transactions) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		response = append(response, dto.TransactionResponse{
			ID:          tx.ID,
			Type:        string(tx.Type),
			Amount:      tx.Amount.StringFixed(bulkorder.DisplayPrecision),
			Currency:    tx.Currency,
			BatchID:     tx.BatchID,
			ProcessedAt: tx.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, response)
}
