package server

import (
	"errors"
	"net/http"

	"storefront-api/internal/apperror"
	"storefront-api/internal/handler"
	authmw "storefront-api/internal/middleware"
	"storefront-api/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo            *echo.Echo
	cartHandler     *handler.CartHandler
	orderHandler    *handler.OrderHandler
	paymentHandler  *handler.PaymentHandler
	webhookHandler  *handler.WebhookHandler
	shippingHandler *handler.ShippingHandler
	catalogHandler  *handler.CatalogHandler
	wishListHandler *handler.WishListHandler
	cardsHandler    *handler.CardsHandler
	jwtSecret       string
}

func NewServer(
	cartService service.CartService,
	checkoutService service.CheckoutService,
	paymentService service.PaymentService,
	shippingService service.ShippingService,
	catalogService service.CatalogService,
	wishListService service.WishListService,
	layoutService service.LayoutService,
	jwtSecret string,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = errorHandler

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		cartHandler:     handler.NewCartHandler(cartService),
		orderHandler:    handler.NewOrderHandler(checkoutService),
		paymentHandler:  handler.NewPaymentHandler(paymentService),
		webhookHandler:  handler.NewWebhookHandler(paymentService),
		shippingHandler: handler.NewShippingHandler(shippingService),
		catalogHandler:  handler.NewCatalogHandler(catalogService),
		wishListHandler: handler.NewWishListHandler(wishListService),
		cardsHandler:    handler.NewCardsHandler(layoutService),
		jwtSecret:       jwtSecret,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api/v1")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	auth := authmw.AuthMiddleware(s.jwtSecret)
	admin := authmw.RequireAdmin()

	// -------- catalog (public reads) --------
	api.GET("/products", s.catalogHandler.GetAllProducts)
	api.GET("/products/latest", s.catalogHandler.GetLatestProducts)
	api.GET("/products/:id", s.catalogHandler.GetSingleProduct)
	api.GET("/categories/slug/:slug", s.catalogHandler.GetCategoryBySlug)
	api.GET("/cards", s.cardsHandler.GetCards)
	api.POST("/cards/refresh", s.cardsHandler.RefreshCards, auth, admin)

	// -------- cart --------
	cart := api.Group("/cart", auth)
	cart.POST("", s.cartHandler.AddToCart)
	cart.GET("", s.cartHandler.GetCart)
	cart.PUT("", s.cartHandler.UpdateCart)
	cart.DELETE("/:productId", s.cartHandler.RemoveFromCart)
	cart.GET("/admin/:userId", s.cartHandler.GetCartByAdmin, admin)

	// -------- orders / checkout --------
	orders := api.Group("/orders", auth)
	orders.POST("/create-payment-intent", s.orderHandler.CreatePaymentIntent)
	orders.POST("/create-order-after-payment", s.orderHandler.CreateOrderAfterPayment)
	orders.GET("/showAllMyOrders", s.orderHandler.GetCurrentUserOrders)
	orders.GET("", s.orderHandler.GetAllOrders, admin)
	orders.DELETE("", s.orderHandler.DeleteAllOrders, admin)
	orders.GET("/:id", s.orderHandler.GetSingleOrder)
	orders.PATCH("/:id", s.orderHandler.UpdateOrder)

	// -------- payments --------
	payments := api.Group("/payments", auth)
	payments.POST("", s.paymentHandler.CreatePayment)
	payments.GET("", s.paymentHandler.GetUserPayments)

	// -------- shipping --------
	shipping := api.Group("/shipping", auth)
	shipping.POST("", s.shippingHandler.AddShippingDetails)
	shipping.GET("", s.shippingHandler.GetShippingStatus)

	// -------- wishlist --------
	wishlist := api.Group("/wishlist", auth)
	wishlist.POST("", s.wishListHandler.AddToWishlist)
	wishlist.GET("", s.wishListHandler.GetWishlist)
	wishlist.DELETE("/:productId", s.wishListHandler.RemoveFromWishlist)

	// -------- gateway callbacks (no auth, signature-verified) --------
	api.POST("/webhooks/stripe", s.webhookHandler.StripeWebhook)
}

// errorHandler maps the error taxonomy onto HTTP statuses; anything
// unclassified is a 500 with a generic body.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		_ = c.JSON(appErr.HTTPStatus(), map[string]string{"error": appErr.Message})
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		_ = c.JSON(httpErr.Code, map[string]interface{}{"error": httpErr.Message})
		return
	}

	c.Echo().Logger.Error(err)
	_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
