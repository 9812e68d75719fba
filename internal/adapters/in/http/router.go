package http

import (
	"net/http"
	"time"

	"hawker/internal/generated/servers"
	"hawker/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echolog "github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	apiPrefix   = "/api/v1/stall"
	openAPIPath = "/api/v1/openapi.json"
)

type RouterConfig struct {
	JWT JWTConfig
	// Metrics serves /metrics when set.
	Metrics http.Handler
	// BodyLimit is an echo size string such as "64K".
	BodyLimit string
}

// NewRouter assembles the echo instance: recovery, request ids, access logs, bearer
// auth on the stall API, and the ops endpoints.
func NewRouter(server *Server, cfg RouterConfig, log *logger.Logger) *echo.Echo {
	if log == nil {
		log = logger.Nop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(echolog.WARN)
	e.Validator = newRequestValidator()

	bodyLimit := cfg.BodyLimit
	if bodyLimit == "" {
		bodyLimit = "64K"
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.BodyLimit(bodyLimit))
	e.Use(requestLogger(log))
	e.Use(BearerAuth(cfg.JWT, apiPrefix))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if cfg.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(cfg.Metrics))
	}
	e.GET(openAPIPath, serveOpenAPI)
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL(openAPIPath)))

	servers.RegisterHandlers(e, server)
	return e
}

// Instrument wraps the router so every request gets a server span.
func Instrument(e *echo.Echo, serviceName string) http.Handler {
	return otelhttp.NewHandler(e, serviceName,
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}

func serveOpenAPI(c echo.Context) error {
	doc, err := servers.GetSwagger()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, servers.Error{
			Code:    http.StatusInternalServerError,
			Message: "openapi document unavailable",
		})
	}
	return c.JSON(http.StatusOK, doc)
}

// requestLogger puts the request id on the request context so handler logs carry it,
// then writes one access line per request.
func requestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)
			ctx := log.WithRequestID(req.Context(), requestID)
			c.SetRequest(req.WithContext(ctx))

			started := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			ctx = log.WithFields(ctx, map[string]any{
				"method":      req.Method,
				"path":        c.Path(),
				"status":      c.Response().Status,
				"duration_ms": time.Since(started).Milliseconds(),
			})
			log.Info(ctx, "http request")
			return nil
		}
	}
}
