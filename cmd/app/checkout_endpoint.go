package main

import (
	"net/http"
	"strconv"

	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/middleware"
	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/services"

	"github.com/labstack/echo/v4"
)

func registerCheckoutRoutes(g *echo.Group, cs *services.CheckoutService, os *services.OrderQueryService, jwtSecret []byte) {
	// CHECKOUT requires a signed-in user
	p := g.Group("/checkout")
	p.Use(middleware.JWTMiddleware(jwtSecret))

	p.POST("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		redirectURL, err := cs.Begin(c.Request().Context(), claims.UserID())
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"redirect_url": redirectURL})
	})

	// order history
	o := g.Group("/orders")
	o.Use(middleware.JWTMiddleware(jwtSecret))

	o.GET("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		orders, err := os.ListByUser(c.Request().Context(), claims.UserID())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, orders)
	})

	o.GET("/:orderid", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		orderID, err := strconv.ParseInt(c.Param("orderid"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid order id"})
		}
		detail, err := os.Get(c.Request().Context(), claims.UserID(), orderID)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, detail)
	})

	// midtrans webhook; authenticated by its payload signature, not a token
	g.POST("/payments/midtrans/notify", func(c echo.Context) error {
		payload := map[string]interface{}{}
		if err := c.Bind(&payload); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}
		if err := cs.HandleNotification(c.Request().Context(), payload); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "ok"})
	})
}
