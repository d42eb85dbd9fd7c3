package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const HeaderRequestID = "X-Request-ID"

type requestObserver interface {
	ObserveRequest(method, path, status string, d time.Duration)
}

type AccessLogMiddleware struct {
	logger   *zap.Logger
	observer requestObserver
}

// NewAccessLogMiddleware logs every request and, when observer is set,
// records its duration per route.
func NewAccessLogMiddleware(logger *zap.Logger, observer requestObserver) *AccessLogMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccessLogMiddleware{logger: logger, observer: observer}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)

		err := c.Next()

		dur := time.Since(start)
		status := c.Response().StatusCode()

		route := c.Route().Path
		if route == "" {
			route = c.Path()
		}
		if m.observer != nil {
			m.observer.ObserveRequest(c.Method(), route, strconv.Itoa(status), dur)
		}

		m.logger.Info("HTTP access",
			zap.String("rid", rid),
			zap.String("ip", c.IP()),
			zap.String("method", c.Method()),
			zap.String("path", c.OriginalURL()),
			zap.Int("status", status),
			zap.Duration("latency", dur),
			zap.Int("resp_bytes", len(c.Response().Body())),
			zap.String("ua", c.Get("User-Agent")),
		)

		return err
	}
}
