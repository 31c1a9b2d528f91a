package middleware

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/metrics"
	"github.com/gofiber/fiber/v2"
)

// Metrics records request count and latency labelled by route pattern, so ids
// in paths do not blow up label cardinality. Errors are resolved through the
// app's error handler first so the recorded status is the one sent.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		route := c.Route().Path
		if route == "" || route == "/" {
			route = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Method(), route, c.Response().StatusCode(), time.Since(start))
		return nil
	}
}
