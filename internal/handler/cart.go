package handler

import (
	"net/http"

	"storefront-api/internal/dto"
	"storefront-api/internal/middleware"
	"storefront-api/internal/service"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	cart, err := h.cartService.AddItems(ctx, middleware.UserID(c), req.Items)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "cart": cart})
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()

	cart, err := h.cartService.GetCart(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "cart": cart})
}

func (h *CartHandler) GetCartByAdmin(c echo.Context) error {
	ctx := c.Request().Context()

	cart, err := h.cartService.GetCart(ctx, c.Param("userId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "cart": cart})
}

func (h *CartHandler) UpdateCart(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	cart, err := h.cartService.SetItems(ctx, middleware.UserID(c), req.Items)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "cart": cart})
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()

	cart, err := h.cartService.RemoveItem(ctx, middleware.UserID(c), c.Param("productId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "cart": cart})
}
