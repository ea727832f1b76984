package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	"warranty-tracker/internal/middleware"
	"warranty-tracker/internal/ranker"
	warrantyHTTP "warranty-tracker/internal/warranty/delivery/http"
	warrantyUC "warranty-tracker/internal/warranty/usecase"
	"warranty-tracker/pkg/thumbnail"
)

// setupWarrantyDomain initializes the warranty domain and registers its routes.
func (srv HTTPServer) setupWarrantyDomain(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware) error {
	// 1. Ranker
	rk := ranker.New(ranker.Options{
		ThumbnailURLPrefix: srv.thumbnailPrefix,
		DefaultThumbnail:   thumbnail.DefaultName,
	})

	// 2. UseCase
	uc := warrantyUC.New(srv.l, srv.repo, rk, srv.parser, warrantyUC.Options{
		Thumbnails:   srv.thumbnails,
		Calendar:     srv.calendar,
		ClosestLimit: srv.closestLimit,
		RecentLimit:  srv.recentLimit,
		Reminder:     srv.reminder,
	})

	// 3. HTTP Handler
	h := warrantyHTTP.New(srv.l, uc, srv.parser, srv.maxUploadBytes)

	// 4. Routes: registers /api/v1/items and /api/v1/dashboard
	warrantyHTTP.RegisterRoutes(api, h, mw)

	if srv.calendar == nil {
		srv.l.Infof(ctx, "Warranty domain registered (calendar reminders disabled)")
	} else {
		srv.l.Infof(ctx, "Warranty domain registered")
	}
	return nil
}
