package middleware

import (
	"reflect"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lamnguyen-ct/storefront/pkg/util"
)

const (
	metricsPath  = "/metrics"
	notFoundPath = "/not-found"
)

func isNotFoundHandler(handler echo.HandlerFunc) bool {
	return reflect.ValueOf(handler).Pointer() == reflect.ValueOf(echo.NotFoundHandler).Pointer()
}

// Metrics records a request duration histogram per code/method/path and
// serves the prometheus endpoint on /metrics.
func Metrics() echo.MiddlewareFunc {
	httpMetrics, err := util.GetHistogramVec("http_request_duration_seconds", "code", "method", "path")
	if err != nil {
		panic(err)
	}

	promHandler := echo.WrapHandler(promhttp.Handler())

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.RequestURI == metricsPath {
				return promHandler(c)
			}

			path := c.Path()
			// avoid high cardinality from unmatched routes
			if isNotFoundHandler(c.Handler()) {
				path = notFoundPath
			}

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := strconv.Itoa(c.Response().Status)
			httpMetrics.WithLabelValues(status, req.Method, path).Observe(time.Since(start).Seconds())

			return err
		}
	}
}
