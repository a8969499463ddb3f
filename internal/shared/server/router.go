package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medhub-backend/internal/documents"
	"medhub-backend/internal/extractions"
	"medhub-backend/internal/readings"
	"medhub-backend/internal/shared/auth"
	"medhub-backend/internal/shared/config"
	"medhub-backend/internal/shared/metrics"
	"medhub-backend/internal/shared/server/middleware"
	"medhub-backend/internal/shared/server/respond"
	"medhub-backend/internal/symptoms"
	"medhub-backend/internal/users"
)

// RouterDeps carries the handlers and verifier the router mounts.
type RouterDeps struct {
	Config            config.Config
	Verifier          auth.Verifier
	DocumentHandler   *documents.Handler
	ExtractionHandler *extractions.Handler
	ReadingHandler    *readings.Handler
	SymptomHandler    *symptoms.Handler
	UserHandler       *users.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/healthz", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	api.Use(
		middleware.Auth(deps.Verifier),
		middleware.RateLimit(middleware.RateLimitConfig{
			GroupFor: rateLimitGroup,
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT": {Rate: 5, Burst: 20},
				"POLLING": {Rate: 20, Burst: 60},
			},
		}),
	)

	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(api)
	}
	if deps.ExtractionHandler != nil {
		deps.ExtractionHandler.RegisterRoutes(api)
	}
	if deps.ReadingHandler != nil {
		deps.ReadingHandler.RegisterRoutes(api)
	}
	if deps.SymptomHandler != nil {
		deps.SymptomHandler.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}

	if deps.Config.Env == "dev" || deps.Config.Env == "local" {
		r.GET("/metrics", metrics.Handler())
	}

	return r
}

// rateLimitGroup puts document status polling in a more generous
// bucket than mutating requests.
func rateLimitGroup(c *gin.Context) string {
	if c.Request.Method == http.MethodGet && c.FullPath() == "/api/v1/documents/:id" {
		return "POLLING"
	}
	return "DEFAULT"
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
