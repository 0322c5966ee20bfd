package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/taskflow/task-service/internal/api/handler"
	"github.com/taskflow/task-service/internal/api/middleware"
	"github.com/taskflow/task-service/internal/core/ports"

	_ "github.com/taskflow/task-service/docs"
)

// Deps carries everything the HTTP layer needs. Health checks are optional;
// a nil Policy means DefaultPolicy and a nil Metrics registry means the
// Prometheus default registry.
type Deps struct {
	Auth     ports.AuthService
	Tasks    ports.TaskService
	Verifier ports.TokenVerifier
	Health   map[string]handler.DependencyCheck
	Policy   *middleware.Policy
	Metrics  *prometheus.Registry
	Logger   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	policy := deps.Policy
	if policy == nil {
		policy = middleware.DefaultPolicy()
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(metricsMiddleware(deps.Metrics))
	e.Use(middleware.Authenticate(deps.Verifier, deps.Logger))
	e.Use(middleware.Guard(policy))

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	auth := e.Group("/api/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/signup", authHandler.Signup)

	// --- Role probes ---
	content := handler.NewContentHandler()
	test := e.Group("/api/test")
	test.GET("/all", content.All)
	test.GET("/user", content.User)
	test.GET("/mod", content.Moderator)
	test.GET("/admin", content.Admin)

	// --- Tasks ---
	taskHandler := handler.NewTaskHandler(deps.Tasks)
	tasks := e.Group("/api/task")
	tasks.GET("/get-all-tasks", taskHandler.List)
	tasks.POST("/create", taskHandler.Create)
	tasks.GET("/getById/:id", taskHandler.Get)
	tasks.GET("/getByUserId/:userId", taskHandler.ByUser)
	tasks.PUT("/update-task/:id", taskHandler.Update)
	tasks.DELETE("/delete-task/:id", taskHandler.Delete)

	// --- Health probes, metrics and docs (public) ---
	healthHandler := handler.NewHealthHandler(deps.Health)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", metricsHandler(deps.Metrics))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func metricsMiddleware(reg *prometheus.Registry) echo.MiddlewareFunc {
	cfg := echoprometheus.MiddlewareConfig{Namespace: "taskflow"}
	if reg != nil {
		cfg.Registerer = reg
	}
	return echoprometheus.NewMiddlewareWithConfig(cfg)
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil || v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
