package controllers

import (
	"net/http"

	"closetapi/store"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type HealthController struct {
	Store store.GarmentStore
}

// Health never fails on a store error, it reports zero garments instead.
func (controller *HealthController) Health(c echo.Context) error {
	count, err := controller.Store.Count(c.Request().Context(), "")
	if err != nil {
		zerolog.Ctx(c.Request().Context()).Warn().Err(err).Msg("health check could not count garments")
		count = 0
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":        "ok",
		"message":       "server is running",
		"data_source":   controller.Store.Describe(),
		"total_clothes": count,
	})
}

func (controller *HealthController) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "home.html", map[string]interface{}{
		"DataSource": controller.Store.Describe(),
	})
}
