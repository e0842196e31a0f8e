package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/ocupalli/occupational-health/internal/api/handler"
	"github.com/ocupalli/occupational-health/internal/api/metrics"
	"github.com/ocupalli/occupational-health/internal/api/middleware"
	"github.com/ocupalli/occupational-health/internal/core/domain"
	"github.com/ocupalli/occupational-health/internal/core/ports"
	"github.com/ocupalli/occupational-health/internal/infrastructure/http/handlers"
)

// Dependencies are the services the router exposes over HTTP.
type Dependencies struct {
	Auth           ports.AuthService
	Tokens         ports.TokenValidator
	Users          ports.UserService
	RiskCategories ports.RiskCategoryService
	Risks          ports.RiskService
	Environments   ports.EnvironmentService
	Jobs           ports.JobService
	// HealthChecks backs the readiness probe, keyed by dependency name.
	HealthChecks map[string]handlers.Check
	Logger       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(metrics.Middleware())
	e.Use(Recover(deps.Logger))

	authMiddleware := middleware.Auth(deps.Tokens, deps.Logger)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Health, metrics, docs (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.HealthChecks)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	for _, prefix := range []string{"/auth", ""} {
		g := e.Group(prefix)
		g.POST("/login", authHandler.Login)
		g.GET("/me", authHandler.Me, authMiddleware)
		g.POST("/logout", authHandler.Logout, authMiddleware)
	}

	// --- Users (admin) ---
	userHandler := handler.NewUserHandler(deps.Users)
	users := e.Group("/users", authMiddleware, adminOnly)
	users.POST("", userHandler.Create)
	users.GET("", userHandler.List)

	// --- Risk mapping: reads for any authenticated role, writes for admins ---
	riskHandler := handler.NewRiskHandler(deps.RiskCategories, deps.Risks)
	categories := e.Group("/risk-categories", authMiddleware)
	categories.GET("", riskHandler.ListCategories)
	categories.GET("/:id", riskHandler.GetCategory)
	categories.POST("", riskHandler.CreateCategory, adminOnly)
	categories.PUT("/:id", riskHandler.UpdateCategory, adminOnly)
	categories.DELETE("/:id", riskHandler.DeleteCategory, adminOnly)

	risks := e.Group("/risks", authMiddleware)
	risks.GET("", riskHandler.ListRisks)
	risks.GET("/:id", riskHandler.GetRisk)
	risks.POST("", riskHandler.CreateRisk, adminOnly)
	risks.PUT("/:id", riskHandler.UpdateRisk, adminOnly)
	risks.DELETE("/:id", riskHandler.DeleteRisk, adminOnly)

	envHandler := handler.NewEnvironmentHandler(deps.Environments, deps.Jobs)
	environments := e.Group("/environments", authMiddleware)
	environments.GET("", envHandler.ListEnvironments)
	environments.GET("/:id", envHandler.GetEnvironment)
	environments.POST("", envHandler.CreateEnvironment, adminOnly)
	environments.DELETE("/:id", envHandler.DeleteEnvironment, adminOnly)

	jobs := e.Group("/jobs", authMiddleware)
	jobs.GET("/:id", envHandler.GetJob)
	jobs.POST("", envHandler.CreateJob, adminOnly)
	jobs.POST("/:id/environments", envHandler.AddJobEnvironment, adminOnly)

	return e
}

// requestLogger emits one zerolog event per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error()
			} else if v.Status >= 400 {
				ev = log.Warn()
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
