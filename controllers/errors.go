package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"closetapi/models"
	"closetapi/stylist"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator reports fields by their json names so messages match
// the request body.
func NewCustomValidator(v *validator.Validate) *CustomValidator {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		switch fe.Tag() {
		case "required":
			return models.NewValidationError(fe.Field(), "is required")
		case "max":
			return models.NewValidationError(fe.Field(), "must be at most %s characters", fe.Param())
		default:
			return models.NewValidationError(fe.Field(), "failed %s validation", fe.Tag())
		}
	}
	return models.NewValidationError("", "%v", err)
}

// errorResponse maps a handler error to its status and JSON envelope.
func errorResponse(err error) (int, echo.Map) {
	var (
		validation *models.ValidationError
		domain     *stylist.DomainError
		httpErr    *echo.HTTPError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, failure(validation.Error())
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, failure("garment not found")
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict, failure(err.Error())
	case errors.As(err, &domain):
		body := failure(domain.Message)
		body["code"] = string(domain.Code)
		switch domain.Code {
		case stylist.NoSuitableGarments:
			body["suggestion"] = domain.Suggestion
			return http.StatusBadRequest, body
		case stylist.ParseFailure:
			body["raw"] = domain.Raw
			return http.StatusBadGateway, body
		default:
			body["error"] = "recommendation service failed: " + domain.Message
			return http.StatusBadGateway, body
		}
	case errors.As(err, &httpErr):
		return httpErr.Code, failure(fmt.Sprint(httpErr.Message))
	default:
		return http.StatusInternalServerError, failure("internal server error")
	}
}

func failure(message string) echo.Map {
	return echo.Map{"success": false, "error": message}
}

// HTTPErrorHandler renders every error in the same envelope and reports
// server side failures to sentry.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status, body := errorResponse(err)
	if status >= http.StatusInternalServerError {
		if hub := sentryecho.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		} else {
			sentry.CaptureException(err)
		}
		zerolog.Ctx(c.Request().Context()).Error().Stack().Err(err).Int("status", status).Msg("request failed")
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		zerolog.Ctx(c.Request().Context()).Error().Err(writeErr).Msg("could not write error response")
	}
}
