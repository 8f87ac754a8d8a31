package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const XRequestID = "x-request-id"

func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(XRequestID).(string); ok && id != "" {
		return id
	}
	if id := GetRequestIDFromContext(c.Request().Context()); id != "" {
		return id
	}
	return c.Request().Header.Get(XRequestID)
}

func GetRequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(XRequestID).(string); ok {
		return id
	}
	return ""
}

func injectRequestID(c echo.Context, reqID string) {
	//lint:ignore SA1029 we want to expose this key
	ctx := context.WithValue(c.Request().Context(), XRequestID, reqID)
	c.SetRequest(c.Request().WithContext(ctx))
	c.Set(XRequestID, reqID)
}

// RequestID picks the inbound request id header or generates one, and
// propagates it through the echo and request contexts plus the response
// header.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqID := getRequestIDFromHeader(c.Request().Header)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			injectRequestID(c, reqID)
			c.Response().Header().Set(XRequestID, reqID)
			return next(c)
		}
	}
}

func getRequestIDFromHeader(h http.Header) string {
	return h.Get(XRequestID)
}
