package handler

import (
	"net/http"

	"storefront-api/internal/service"

	"github.com/labstack/echo/v4"
)

type CardsHandler struct {
	layoutService service.LayoutService
}

func NewCardsHandler(layoutService service.LayoutService) *CardsHandler {
	return &CardsHandler{
		layoutService: layoutService,
	}
}

func (h *CardsHandler) GetCards(c echo.Context) error {
	ctx := c.Request().Context()

	cards, err := h.layoutService.ListCards(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"cards": cards})
}

// RefreshCards lets an admin trigger the auto refresh outside the schedule.
func (h *CardsHandler) RefreshCards(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.layoutService.RunAutoRefresh(ctx); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"msg": "card layout refreshed"})
}
