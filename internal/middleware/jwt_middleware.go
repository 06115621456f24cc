package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Claims is the payload the external identity provider signs. The subject is
// the user id; nothing here is issued by this service, only verified.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// UserID returns the token subject.
func (c *Claims) UserID() string { return c.Subject }

// JWTMiddleware returns an Echo middleware that validates the bearer token
// and attaches its claims to the request context.
func JWTMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := parseClaims(c, secret)
			if claims == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or missing token"})
			}
			c.Set("auth_claims", claims)
			return next(c)
		}
	}
}

// OptionalJWT attaches claims when a valid bearer token is present and lets
// anonymous requests through. Guest carts depend on this.
func OptionalJWT(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims := parseClaims(c, secret); claims != nil {
				c.Set("auth_claims", claims)
			}
			return next(c)
		}
	}
}

// GetClaims extracts claims set by JWTMiddleware/OptionalJWT, or nil.
func GetClaims(c echo.Context) *Claims {
	v := c.Get("auth_claims")
	if v == nil {
		return nil
	}
	if cl, ok := v.(*Claims); ok {
		return cl
	}
	return nil
}

func parseClaims(c echo.Context, secret []byte) *Claims {
	auth := c.Request().Header.Get("Authorization")
	if auth == "" {
		return nil
	}
	parts := strings.Fields(auth)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil
	}
	token, err := jwt.ParseWithClaims(parts[1], &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil
	}
	return claims
}
