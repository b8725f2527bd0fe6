package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const indexMessage = "Portfolio API is running"

var endpoints = []string{
	"GET /api/health",
	"GET /api/portfolio",
	"GET /api/resume",
	"GET /api/resume/json",
	"POST /api/contact",
}

// NewRouter builds the gin engine. Wrong verbs on known paths get 405 and
// unknown paths get 404, both rendered by ErrorMiddleware.
func NewRouter(portfolioHandler *PortfolioHandler, contactHandler *ContactHandler, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(
		RequestLogger(log),
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			err := fmt.Errorf("panic: %v", recovered)
			log.Error("Recovered from panic", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, apperror.NewInternal("panic recovered", err).ToJSON())
		}),
		ErrorMiddleware(log),
	)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, IndexResponse{Message: indexMessage, Endpoints: endpoints})
	})

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, HealthResponse{Status: "UP"}) })
		api.GET("/portfolio", portfolioHandler.GetPortfolio)
		api.GET("/resume", portfolioHandler.GetResume)
		api.GET("/resume/json", portfolioHandler.GetResume)
		api.POST("/contact", contactHandler.SubmitContact)
	}

	router.NoMethod(MethodNotAllowed)
	router.NoRoute(RouteNotFound)

	return router
}

// WithCORS wraps h so browsers on allowedOrigins can call the API.
// Preflight requests are answered here and never reach h.
func WithCORS(h http.Handler, allowedOrigins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", HeaderRequestID},
		ExposedHeaders: []string{HeaderRequestID},
		MaxAge:         86400,
	})
	return c.Handler(h)
}
