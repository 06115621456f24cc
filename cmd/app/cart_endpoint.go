package main

import (
	"net/http"

	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/middleware"
	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type addItemRequest struct {
	CourseID string `json:"courseid"`
	Location string `json:"location"`
}

type promoRequest struct {
	Code     string `json:"code"`
	CourseID string `json:"courseid"`
}

type openRequest struct {
	Open bool `json:"open"`
}

const cartSessionCookie = "cart_session"

// cartOwner resolves the cart's owner key: the signed-in user when a valid
// token is present, otherwise a guest session cookie (minted on first touch).
func cartOwner(c echo.Context) (ownerID string, hasSession bool) {
	if claims := middleware.GetClaims(c); claims != nil {
		return "user:" + claims.UserID(), true
	}
	if ck, err := c.Cookie(cartSessionCookie); err == nil && ck.Value != "" {
		return "guest:" + ck.Value, false
	}
	id := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     cartSessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return "guest:" + id, false
}

func registerCartRoutes(g *echo.Group, cs *services.CartService, jwtSecret []byte) {
	p := g.Group("/cart")
	p.Use(middleware.OptionalJWT(jwtSecret))

	// GET cart
	p.GET("", func(c echo.Context) error {
		owner, _ := cartOwner(c)
		resp, err := cs.Get(c.Request().Context(), owner)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		cs.TrackViewCart(owner)
		return c.JSON(http.StatusOK, resp)
	})

	// ADD item
	p.POST("/items", func(c echo.Context) error {
		owner, session := cartOwner(c)
		req := new(addItemRequest)
		if err := c.Bind(req); err != nil || req.CourseID == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if err := cs.AddItem(c.Request().Context(), owner, session, req.CourseID, req.Location); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, map[string]string{"message": "added"})
	})

	// REMOVE item
	p.DELETE("/items/:courseid", func(c echo.Context) error {
		owner, session := cartOwner(c)
		cs.RemoveItem(c.Request().Context(), owner, session, c.Param("courseid"))
		return c.JSON(http.StatusOK, map[string]string{"message": "removed"})
	})

	// CLEAR cart
	p.DELETE("", func(c echo.Context) error {
		owner, _ := cartOwner(c)
		cs.ClearCart(c.Request().Context(), owner)
		return c.JSON(http.StatusOK, map[string]string{"message": "cleared"})
	})

	// APPLY promo code
	p.POST("/promo", func(c echo.Context) error {
		owner, _ := cartOwner(c)
		req := new(promoRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if err := cs.ApplyPromo(c.Request().Context(), owner, req.Code); err != nil {
			// recoverable, shown inline next to the input
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		}
		resp, err := cs.Get(c.Request().Context(), owner)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, resp)
	})

	// AUTO-APPLY promo from a referral link
	p.POST("/promo/auto", func(c echo.Context) error {
		owner, _ := cartOwner(c)
		req := new(promoRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if err := cs.AutoApplyPromo(c.Request().Context(), owner, req.Code, req.CourseID); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "ok"})
	})

	// REMOVE promo code (latches out auto-apply for the session)
	p.DELETE("/promo", func(c echo.Context) error {
		owner, _ := cartOwner(c)
		cs.ClearPromo(c.Request().Context(), owner)
		return c.JSON(http.StatusOK, map[string]string{"message": "removed"})
	})

	// cart drawer open/closed UI state
	p.POST("/open", func(c echo.Context) error {
		owner, _ := cartOwner(c)
		req := new(openRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		cs.StoreFor(c.Request().Context(), owner).SetOpen(req.Open)
		return c.JSON(http.StatusOK, map[string]bool{"open": req.Open})
	})
}
