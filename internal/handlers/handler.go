package handlers

import (
	"net/http"
	"time"

	"package_features/internal/logger"
	"package_features/internal/service"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const statusOK = "ok"

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services       *service.Service
	log            *logger.Logger
	allowedOrigins []string
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// WithAllowedOrigins restricts CORS to origins. Empty or "*" allows every origin.
func (h *Handler) WithAllowedOrigins(origins []string) *Handler {
	h.allowedOrigins = origins
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	if h.log != nil {
		zl := h.log.Desugar()
		router.Use(ginzap.Ginzap(zl, time.RFC3339, true))
		router.Use(ginzap.RecoveryWithZap(zl, true))
	} else {
		router.Use(gin.Recovery())
	}
	router.Use(requestID, cors.New(h.corsConfig()), metricsMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h.registerUserRoutes(router)
	h.registerFeatureRoutes(router)
	h.registerEventRoutes(router)

	return router
}

func (h *Handler) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range h.allowedOrigins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(h.allowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = h.allowedOrigins
	cfg.AllowCredentials = true
	return cfg
}

func (h *Handler) registerUserRoutes(r *gin.Engine) {
	users := r.Group("/users")
	{
		users.GET("", h.userIdMiddleware, h.listUsers)
		users.POST("", h.createUser)
		users.POST("/login", h.login)
		users.GET("/:id", h.userIdMiddleware, h.getUserByID)
		users.GET("/email/:email", h.userIdMiddleware, h.getUserByEmail)
		users.PUT("/:id", h.updateUser)
		users.DELETE("/:id", h.deleteUser)
	}
}

func (h *Handler) registerFeatureRoutes(r *gin.Engine) {
	features := r.Group("/features")
	{
		features.POST("", h.createFeature)
		features.GET("", h.listFeatures)
		features.GET("/:id", h.getFeature)
		features.PUT("/:id", h.updateFeature)
		features.DELETE("/:id", h.deleteFeature)
	}
}

func (h *Handler) registerEventRoutes(r *gin.Engine) {
	r.GET("/events", h.userIdMiddleware, h.getEvents)
	// WebSocket stream of new audit events; same port
	r.GET("/ws/events", h.userIdMiddleware, h.wsEvents)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}
