package handler

import (
	"net/http"

	"storefront-api/internal/dto"
	"storefront-api/internal/middleware"
	"storefront-api/internal/service"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RecordPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	payment, err := h.paymentService.RecordPayment(ctx, middleware.UserID(c), req.OrderID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{"message": "payment recorded", "payment": payment})
}

func (h *PaymentHandler) GetUserPayments(c echo.Context) error {
	ctx := c.Request().Context()

	payments, err := h.paymentService.ListUserPayments(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"payments": payments})
}
