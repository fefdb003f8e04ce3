package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boostlane/panel/internal/bulkorder"
	domainErrors "github.com/boostlane/panel/internal/domain/errors"
	"github.com/boostlane/panel/internal/server/http/dto"
)

// BulkOrderHandler manages mass order validation and submission.
type BulkOrderHandler struct {
	facade BulkOrderFacade
}

// NewBulkOrderHandler constructs BulkOrderHandler.
func NewBulkOrderHandler(facade BulkOrderFacade) *BulkOrderHandler {
	return &BulkOrderHandler{facade: facade}
}

// Preview handles POST /api/orders/mass/preview.
func (h *BulkOrderHandler) Preview(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.BulkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	preview, err := h.facade.PreviewBatch(c.Request.Context(), userID, req.Orders)
	if err != nil {
		switch {
		case errors.Is(err, bulkorder.ErrUnknownUserCurrency):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toPreviewResponse(preview.Result, preview.Balance))
}

// Submit handles POST /api/orders/mass.
func (h *BulkOrderHandler) Submit(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.BulkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	receipt, err := h.facade.SubmitBatch(c.Request.Context(), userID, req.Orders)
	if err != nil {
		switch {
		case errors.Is(err, bulkorder.ErrUnknownUserCurrency), errors.Is(err, domainErrors.ErrEmptyBatch):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrInsufficientBalance):
			c.Status(http.StatusPaymentRequired)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.SubmitResponse{
		BatchID:       receipt.BatchID,
		OrdersCreated: receipt.OrdersCreated,
		Total:         receipt.TotalCost.StringFixed(bulkorder.DisplayPrecision),
		Currency:      receipt.Currency,
		Invalid:       toInvalidLines(receipt.InvalidLines),
	})
}

func toPreviewResponse(result *bulkorder.ValidationResult, balance bulkorder.BalanceCheckResult) dto.PreviewResponse {
	valid := make([]dto.PreviewLineResponse, 0, len(result.ValidOrders))
	for _, order := range result.ValidOrders {
		valid = append(valid, dto.PreviewLineResponse{
			Line:        order.LineNumber,
			ServiceID:   order.ServiceID,
			ServiceName: order.Service.Name,
			Link:        order.Link,
			Quantity:    order.Quantity,
			Price:       order.PriceInUserCurrency.StringFixed(bulkorder.DisplayPrecision),
		})
	}

	return dto.PreviewResponse{
		Valid:    valid,
		Invalid:  toInvalidLines(result.InvalidOrders),
		Total:    result.TotalForDisplay().StringFixed(bulkorder.DisplayPrecision),
		Currency: result.UserCurrency,
		Balance: dto.BalanceVerdictResponse{
			Sufficient: balance.Sufficient,
			Available:  balance.Available.StringFixed(bulkorder.DisplayPrecision),
			Required:   balance.Required.StringFixed(bulkorder.DisplayPrecision),
			Message:    balance.Message,
		},
	}
}

func toInvalidLines(lines []bulkorder.InvalidOrderLine) []dto.InvalidLineResponse {
	invalid := make([]dto.InvalidLineResponse, 0, len(lines))
	for _, line := range lines {
		invalid = append(invalid, dto.InvalidLineResponse{
			Line:    line.LineNumber,
			Text:    line.RawText,
			Code:    string(line.ReasonCode),
			Message: line.ReasonMessage,
		})
	}
	return invalid
}
