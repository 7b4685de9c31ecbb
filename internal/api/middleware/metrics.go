package middleware

import (
	"strconv"
	"time"

	"github.com/amaumene/moviedeck/internal/metrics"
	"github.com/gofiber/fiber/v2"
)

// Metrics middleware counts requests and observes their latency, labelled
// by route pattern rather than raw path
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		route := c.Route().Path
		m.HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(statusOf(c, err))).Inc()
		m.HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())

		return err
	}
}
