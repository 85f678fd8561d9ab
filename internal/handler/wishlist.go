package handler

import (
	"net/http"

	"storefront-api/internal/dto"
	"storefront-api/internal/middleware"
	"storefront-api/internal/service"

	"github.com/labstack/echo/v4"
)

type WishListHandler struct {
	wishListService service.WishListService
}

func NewWishListHandler(wishListService service.WishListService) *WishListHandler {
	return &WishListHandler{
		wishListService: wishListService,
	}
}

func (h *WishListHandler) AddToWishlist(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.WishlistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	wishlist, err := h.wishListService.AddProduct(ctx, middleware.UserID(c), req.ProductID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{"message": "product added to wishlist", "wishlist": wishlist})
}

func (h *WishListHandler) GetWishlist(c echo.Context) error {
	ctx := c.Request().Context()

	wishlist, err := h.wishListService.GetWishList(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"wishlist": wishlist})
}

func (h *WishListHandler) RemoveFromWishlist(c echo.Context) error {
	ctx := c.Request().Context()

	wishlist, err := h.wishListService.RemoveProduct(ctx, middleware.UserID(c), c.Param("productId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"wishlist": wishlist})
}
