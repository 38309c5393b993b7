package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/symptom-diary/backend/internal/api"
	"github.com/pageza/symptom-diary/backend/internal/middleware"
	"github.com/pageza/symptom-diary/backend/internal/service"
)

// Dependencies is everything the routes need.
type Dependencies struct {
	Dashboard service.IDashboardService
	Exports   service.IExportService
	// SearchLimiter may be nil, which disables rate limiting.
	SearchLimiter *middleware.RateLimiter
	HealthChecks  map[string]api.Pinger

	SessionSecret string
	SessionTTL    time.Duration
	SecureCookies bool
	CORSOrigins   []string

	Logger *zap.Logger
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(deps.CORSOrigins))

	store := cookie.NewStore([]byte(deps.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(deps.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   deps.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions("dashboard", store))

	health := api.NewHealthHandler(deps.HealthChecks)
	router.GET("/health", health.HealthCheck)
	router.GET("/api/health", health.HealthCheck)

	var limiter gin.HandlerFunc
	if deps.SearchLimiter != nil {
		limiter = deps.SearchLimiter.RateLimitMiddleware()
	}

	v1 := router.Group("/api/v1")
	api.NewDashboardHandler(deps.Dashboard, deps.Exports, limiter, logger).RegisterRoutes(v1)

	return router
}
