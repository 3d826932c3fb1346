package v1

import (
	"net/http"
	"strings"

	"nymble-website/config"
	"nymble-website/internal/delivery/http/middleware"
	"nymble-website/internal/delivery/http/response"
	"nymble-website/internal/delivery/http/web"
	"nymble-website/internal/domain"
	"nymble-website/internal/usecase"
	"nymble-website/pkg/content"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	HealthUC  usecase.HealthUsecase
	Site      *content.Site
	Config    *config.Config
}

func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	cfg := deps.Config
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins, cfg.IsProduction())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))
	r.Use(middleware.CSRFMiddleware(cfg.CookieSecure))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.DefaultRateLimitConfig(cfg.RateLimitGlobalThreshold, cfg.RateLimitWindow())))

	sessions := middleware.FormSession(deps.ContactUC, cfg.CookieSecure, int(cfg.FormSessionTTL.Seconds()))
	// One limiter for both the HTML form and the API so they share a budget
	submitLimiter := middleware.RateLimitMiddleware(middleware.ContactRateLimitConfig(cfg.RateLimitContactThreshold, cfg.RateLimitWindow()))

	v1 := r.Group("/v1")
	NewHealthHandler(v1, deps.HealthUC)
	NewContactHandler(v1, deps.ContactUC, sessions, submitLimiter)
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	pages, err := web.NewPageHandler(r, deps.Site, deps.ContactUC, sessions, submitLimiter, cfg.SiteURL)
	if err != nil {
		return nil, err
	}

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/v1/") {
			response.Error(c, http.StatusNotFound, "Route not found", nil)
			return
		}
		pages.NotFound(c)
	})

	return r, nil
}
