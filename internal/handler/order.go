package handler

import (
	"net/http"

	"storefront-api/internal/dto"
	"storefront-api/internal/middleware"
	"storefront-api/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	checkoutService service.CheckoutService
}

func NewOrderHandler(checkoutService service.CheckoutService) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkoutService,
	}
}

func (h *OrderHandler) CreatePaymentIntent(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreatePaymentIntentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.checkoutService.InitiatePayment(ctx, middleware.UserID(c), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) CreateOrderAfterPayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	order, err := h.checkoutService.FinalizeOrder(ctx, middleware.UserID(c), req.PaymentIntentID, req.ProductIDs)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{"order": order})
}

func (h *OrderHandler) GetCurrentUserOrders(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.checkoutService.ListUserOrders(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"orders": orders, "count": len(orders)})
}

func (h *OrderHandler) GetSingleOrder(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.checkoutService.GetOrder(ctx, middleware.UserID(c), middleware.IsAdmin(c), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"order": order})
}

func (h *OrderHandler) UpdateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	order, err := h.checkoutService.UpdateOrderStatus(ctx, middleware.UserID(c), middleware.IsAdmin(c), c.Param("id"), req.Status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"order": order})
}

func (h *OrderHandler) GetAllOrders(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.checkoutService.ListAllOrders(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"orders": orders, "count": len(orders)})
}

func (h *OrderHandler) DeleteAllOrders(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.checkoutService.DeleteAllOrders(ctx); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"msg": "all orders deleted"})
}
