package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, subject string, secret []byte) string {
	t.Helper()
	claims := &Claims{
		Email: subject + "@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func doRequest(mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, *Claims) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got *Claims
	handler := mw(func(c echo.Context) error {
		got = GetClaims(c)
		return c.NoContent(http.StatusOK)
	})
	_ = handler(c)
	return rec, got
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	rec, claims := doRequest(JWTMiddleware(testSecret), "Bearer "+signToken(t, "u1", testSecret))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, claims)
	assert.Equal(t, "u1", claims.UserID())
}

func TestJWTMiddleware_RejectsMissingAndBadTokens(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not.a.token"},
		{name: "wrong secret", header: "Bearer " + signTokenWrongSecret()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, claims := doRequest(JWTMiddleware(testSecret), tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Nil(t, claims)
		})
	}
}

func signTokenWrongSecret() string {
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other"))
	return token
}

func TestOptionalJWT_AnonymousPassesThrough(t *testing.T) {
	rec, claims := doRequest(OptionalJWT(testSecret), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, claims)
}

func TestOptionalJWT_AttachesClaimsWhenPresent(t *testing.T) {
	rec, claims := doRequest(OptionalJWT(testSecret), "Bearer "+signToken(t, "u2", testSecret))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, claims)
	assert.Equal(t, "u2", claims.UserID())
}
