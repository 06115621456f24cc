package main

import (
	"net/http"

	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/services"

	"github.com/labstack/echo/v4"
)

func registerCatalogRoutes(g *echo.Group, cs *services.CatalogService) {
	p := g.Group("/courses")

	// LIST courses with search/filter/sort
	p.GET("", func(c echo.Context) error {
		courses, err := cs.Browse(
			c.Request().Context(),
			c.QueryParam("q"),
			c.QueryParam("creator"),
			c.QueryParam("sort"),
		)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, courses)
	})

	// COURSE detail by slug
	p.GET("/:slug", func(c echo.Context) error {
		course, err := cs.GetBySlug(c.Request().Context(), c.Param("slug"))
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, course)
	})
}
