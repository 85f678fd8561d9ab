package handler

import (
	"net/http"

	"storefront-api/internal/dto"
	"storefront-api/internal/service"

	"github.com/labstack/echo/v4"
)

type ShippingHandler struct {
	shippingService service.ShippingService
}

func NewShippingHandler(shippingService service.ShippingService) *ShippingHandler {
	return &ShippingHandler{
		shippingService: shippingService,
	}
}

func (h *ShippingHandler) AddShippingDetails(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateShipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	shipping, err := h.shippingService.CreateShipment(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{"message": "shipping details added", "shipping": shipping})
}

func (h *ShippingHandler) GetShippingStatus(c echo.Context) error {
	ctx := c.Request().Context()

	orderID := c.QueryParam("orderId")
	if orderID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing orderId query param")
	}

	shipping, err := h.shippingService.GetShipmentStatus(ctx, orderID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"shipping": shipping})
}
