package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boostlane/panel/internal/bulkorder"
	"github.com/boostlane/panel/internal/domain/model"
	"github.com/boostlane/panel/internal/server/http/dto"
)

// OrderHandler manages order listing endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	orders, err := h.facade.Orders(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	h.respond(c, orders)
}

// Batch handles GET /api/orders/batch/:batchId.
func (h *OrderHandler) Batch(c *gin.Context) {
	userID := CurrentUserID(c)
	orders, err := h.facade.BatchOrders(c.Request.Context(), userID, c.Param("batchId"))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	h.respond(c, orders)
}

func (h *OrderHandler) respond(c *gin.Context, orders []model.Order) {
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:              order.ID,
		BatchID:         order.BatchID,
		ServiceID:       order.ServiceID,
		Link:            order.Link,
		Quantity:        order.Quantity,
		Charge:          order.Charge.StringFixed(bulkorder.DisplayPrecision),
		Currency:        order.Currency,
		Status:          string(order.Status),
		ProviderOrderID: order.ProviderOrderID,
		CreatedAt:       order.CreatedAt,
	}
}
