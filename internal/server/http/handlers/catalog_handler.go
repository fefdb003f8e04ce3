package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boostlane/panel/internal/server/http/dto"
)

// CatalogHandler serves the public service catalog.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// List handles GET /api/services.
func (h *CatalogHandler) List(c *gin.Context) {
	services, err := h.facade.Services(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.ServiceResponse, 0, len(services))
	for _, svc := range services {
		response = append(response, dto.ServiceResponse{
			ID:       svc.ID,
			Name:     svc.Name,
			Category: svc.Category,
			Rate:     svc.RatePerThousand.String(),
			Currency: svc.NativeCurrency,
			MinOrder: svc.MinOrder,
			MaxOrder: svc.MaxOrder,
		})
	}

	c.JSON(http.StatusOK, response)
}
