package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/middleware"
	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/services"

	"github.com/labstack/echo/v4"
)

type progressRequest struct {
	Seconds int64 `json:"seconds"`
}

func registerLibraryRoutes(g *echo.Group, ls *services.LibraryService, jwtSecret []byte) {
	p := g.Group("/library")
	p.Use(middleware.JWTMiddleware(jwtSecret))

	// owned courses with progress
	p.GET("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		items, err := ls.List(c.Request().Context(), claims.UserID())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, items)
	})

	// video id, entitlement-gated
	p.GET("/:courseid/video", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		videoID, err := ls.VideoFor(c.Request().Context(), claims.UserID(), c.Param("courseid"))
		if err != nil {
			if errors.Is(err, services.ErrNotEntitled) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": err.Error()})
			}
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"video_id": videoID})
	})

	// periodic progress sync
	p.PUT("/:courseid/progress", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		req := new(progressRequest)
		if err := c.Bind(req); err != nil {
			// also accept ?seconds= for beacon-style calls
			sec, perr := strconv.ParseInt(c.QueryParam("seconds"), 10, 64)
			if perr != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
			}
			req.Seconds = sec
		}
		if err := ls.SyncProgress(c.Request().Context(), claims.UserID(), c.Param("courseid"), req.Seconds); err != nil {
			if errors.Is(err, services.ErrNotEntitled) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": err.Error()})
			}
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "synced"})
	})
}
