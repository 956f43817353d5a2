package controllers

import (
	"net/http"
	"time"

	"closetapi/metrics"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const ownerKey = "owner"

// RequestLogger attaches a request scoped logger, renders handler errors and
// counts every request.
func RequestLogger(base zerolog.Logger, reg *metrics.Registry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			rid := req.Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, rid)

			logger := base.With().
				Str("request_id", rid).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("remote_ip", c.RealIP()).
				Logger()
			c.SetRequest(req.WithContext(logger.WithContext(req.Context())))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			labels := map[string]string{
				"method": req.Method,
				"path":   c.Path(),
				"status": statusClass(status),
			}
			reg.Inc(req.Context(), metrics.HTTPRequests, labels, 1)

			if status >= 500 {
				reg.Inc(req.Context(), metrics.HTTPRequestErrors, labels, 1)
				logger.Error().Err(err).Int("status", status).Dur("duration", time.Since(start)).Msg("http request failed")
			} else {
				logger.Info().Int("status", status).Dur("duration", time.Since(start)).Msg("http request served")
			}
			return nil
		}
	}
}

func statusClass(code int) string {
	switch {
	case code >= 100 && code < 200:
		return "1xx"
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500 && code < 600:
		return "5xx"
	default:
		return "0"
	}
}

// OwnerMiddlewares make bearer tokens optional. Without an Authorization
// header the request is anonymous and sees the whole closet; with one, the
// token must verify and its subject becomes the garment owner.
func OwnerMiddlewares(secret string) []echo.MiddlewareFunc {
	if secret == "" {
		return []echo.MiddlewareFunc{OwnerMiddleware}
	}
	return []echo.MiddlewareFunc{
		echojwt.WithConfig(echojwt.Config{
			SigningKey: []byte(secret),
			Skipper: func(c echo.Context) bool {
				return c.Request().Header.Get(echo.HeaderAuthorization) == ""
			},
			ErrorHandler: func(c echo.Context, err error) error {
				zerolog.Ctx(c.Request().Context()).Info().Err(err).Msg("rejected bearer token")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			},
		}),
		OwnerMiddleware,
	}
}

func OwnerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userRaw := c.Get("user")
		if userRaw == nil {
			c.Set(ownerKey, "")
			return next(c)
		}
		user, ok := userRaw.(*jwt.Token)
		if !ok {
			return echo.ErrUnauthorized
		}
		claims, ok := user.Claims.(jwt.MapClaims)
		if !ok {
			return echo.ErrUnauthorized
		}
		sub, _ := claims["sub"].(string)
		if sub == "" {
			zerolog.Ctx(c.Request().Context()).Warn().Msg("token without subject")
			return echo.ErrUnauthorized
		}
		c.Set(ownerKey, sub)
		return next(c)
	}
}

func currentOwner(c echo.Context) string {
	owner, _ := c.Get(ownerKey).(string)
	return owner
}
