package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"promptbench/internal/errs"
	"promptbench/internal/metrics"
	"promptbench/internal/services"
)

type Config struct {
	JWTSecret          string
	CORSAllowedOrigins []string
}

type Deps struct {
	Tests      services.TestService
	Generation services.GenerationService
	ApiKeys    services.ApiKeyService
	Models     services.ModelRegistry
	// Ping reports storage health for /healthz. Optional.
	Ping func(ctx context.Context) error
}

type Handler struct {
	tests      services.TestService
	generation services.GenerationService
	apiKeys    services.ApiKeyService
	models     services.ModelRegistry
	ping       func(ctx context.Context) error
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(cfg Config, deps Deps) *gin.Engine {
	h := &Handler{
		tests:      deps.Tests,
		generation: deps.Generation,
		apiKeys:    deps.ApiKeys,
		models:     deps.Models,
		ping:       deps.Ping,
	}

	r := gin.New()
	r.Use(requestID(), recovery(), accessLog(), httpMetrics())
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Authorization", "Content-Type", requestIDHeader},
			ExposeHeaders:    []string{requestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/healthz", h.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.NoRoute(func(c *gin.Context) {
		writeError(c, errs.ErrNotFound)
	})

	api := r.Group("/api")
	api.GET("/models", h.ListModels)

	authed := api.Group("", requireAuth(cfg.JWTSecret))
	h.PrivateRoutes(authed)
	return r
}

func (h *Handler) PrivateRoutes(g *gin.RouterGroup) {
	g.POST("/tests", h.CreateTest)
	g.GET("/tests", h.ListTests)
	g.GET("/tests/:id", h.GetTest)
	g.DELETE("/tests/:id", h.DeleteTest)
	g.POST("/tests/:id/model-test", h.AddModelTest)
	g.PATCH("/tests/responses", h.UpdateResponse)

	g.POST("/model-test/:id/message", h.AddMessage)

	g.DELETE("/messages/:id", h.DeleteMessage)
	g.PATCH("/messages/:id", h.SetMessageIncluded)

	g.POST("/generate", h.Generate)

	g.GET("/keys", h.KeyStatus)
	g.POST("/keys", h.StoreKey)
	g.DELETE("/keys/:provider", h.DeleteKey)
}

func (h *Handler) Health(c *gin.Context) {
	if h.ping != nil {
		if err := h.ping(c.Request.Context()); err != nil {
			writeError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) ListModels(c *gin.Context) {
	c.JSON(http.StatusOK, h.models.ListModelGroups())
}

// bind decodes the JSON body, reporting decode and binding failures as validation errors.
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		writeError(c, errs.Invalid(err.Error()))
		return false
	}
	return true
}
