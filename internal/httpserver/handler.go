package httpserver

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"warranty-tracker/config"
	"warranty-tracker/internal/middleware"
	pkgErrors "warranty-tracker/pkg/errors"
	"warranty-tracker/pkg/response"
)

func (srv HTTPServer) mapHandlers() error {
	mw := middleware.New(srv.l, middleware.Config{RateLimitPerMin: srv.rateLimitPerMin})

	srv.registerMiddlewares(mw)
	srv.registerSystemRoutes()
	srv.registerThumbnailRoutes()

	if err := srv.registerDomainRoutes(mw); err != nil {
		return err
	}

	return nil
}

func (srv HTTPServer) registerMiddlewares(mw middleware.Middleware) {
	srv.gin.Use(mw.Recovery(), mw.RequestID(), mw.Logger(), mw.Metrics())

	ctx := context.Background()
	if srv.environment == config.EnvironmentProduction {
		srv.l.Infof(ctx, "Server mode: production")
	} else {
		srv.l.Infof(ctx, "Server mode: %s", srv.environment)
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)
	srv.gin.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerThumbnailRoutes serves stored thumbnails and the placeholder.
func (srv HTTPServer) registerThumbnailRoutes() {
	srv.gin.GET(srv.thumbnailPrefix+"/:name", srv.serveThumbnail)
}

func (srv HTTPServer) serveThumbnail(c *gin.Context) {
	p, err := srv.thumbnails.Path(c.Param("name"))
	if err == nil {
		_, err = os.Stat(p)
	}
	if err != nil {
		response.Error(c, pkgErrors.NewNotFoundError("thumbnail not found"))
		return
	}
	c.File(p)
}

// registerDomainRoutes registers all domain routes under /api/v1.
func (srv HTTPServer) registerDomainRoutes(mw middleware.Middleware) error {
	ctx := context.Background()
	api := srv.gin.Group("/api/v1")

	if err := srv.setupWarrantyDomain(ctx, api, mw); err != nil {
		return err
	}

	return nil
}
