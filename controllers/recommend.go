package controllers

import (
	"errors"
	"net/http"
	"strings"

	"closetapi/metrics"
	"closetapi/models"
	"closetapi/store"
	"closetapi/stylist"

	"github.com/labstack/echo/v4"
)

type RecommendIn struct {
	Weather  *models.Weather `json:"weather"`
	Schedule string          `json:"schedule" validate:"max=2000"`
}

const emptyClosetSuggestion = "Add garments with POST /api/clothes/add first."

type RecommendController struct {
	Store   store.GarmentStore
	Stylist *stylist.Stylist
	Metrics *metrics.Registry
}

func (controller *RecommendController) RecommendRoutes(g *echo.Group) {
	g.POST("/recommend", controller.Recommend)
}

func (controller *RecommendController) Recommend(c echo.Context) error {
	var req RecommendIn
	if err := c.Bind(&req); err != nil {
		return models.NewValidationError("", "invalid request body")
	}
	if req.Weather == nil || req.Weather.IsZero() {
		return models.NewValidationError("weather", "is required")
	}
	req.Schedule = strings.TrimSpace(req.Schedule)
	if req.Schedule == "" {
		return models.NewValidationError("schedule", "is required")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	garments, err := controller.Store.ListAll(ctx, currentOwner(c))
	if err != nil {
		return err
	}
	if len(garments) == 0 {
		controller.count(c, "empty_closet")
		body := failure("the closet is empty")
		body["suggestion"] = emptyClosetSuggestion
		return c.JSON(http.StatusBadRequest, body)
	}

	rec, err := controller.Stylist.Recommend(ctx, garments, *req.Weather, req.Schedule)
	if err != nil {
		outcome := "error"
		var domain *stylist.DomainError
		if errors.As(err, &domain) {
			outcome = strings.ToLower(string(domain.Code))
		}
		controller.count(c, outcome)
		return err
	}

	controller.count(c, "ok")
	return success(c, http.StatusOK, echo.Map{
		"recommendation": rec,
		"total_clothes":  len(garments),
	})
}

func (controller *RecommendController) count(c echo.Context, outcome string) {
	controller.Metrics.Inc(c.Request().Context(), metrics.Recommendations, map[string]string{"outcome": outcome}, 1)
}
