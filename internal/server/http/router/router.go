package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	pkgAuth "github.com/bersihin/bersihin/internal/pkg/auth"
	"github.com/bersihin/bersihin/internal/server/http/handlers"
	"github.com/bersihin/bersihin/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware. The webhook
// route stays outside the auth middleware; the gateway authenticates
// via the payload signature instead.
func Setup(facade handlers.BookingFacade, auth middleware.TokenParser, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	orderHandler := handlers.NewOrderHandler(facade)
	webhookHandler := handlers.NewWebhookHandler(facade)
	notificationHandler := handlers.NewNotificationHandler(facade)

	api := engine.Group("/api")
	api.POST("/payments/webhook", webhookHandler.Handle)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(auth))
	authed.GET("/orders/:id", orderHandler.Get)
	authed.POST("/orders/:id/status", orderHandler.Advance)
	authed.GET("/notifications", notificationHandler.List)

	customer := api.Group("")
	customer.Use(middleware.AuthRequired(auth, pkgAuth.RoleCustomer))
	customer.POST("/orders", orderHandler.Create)
	customer.GET("/orders", orderHandler.List)
	customer.POST("/orders/:id/after-photos", orderHandler.UploadAfterPhotos)
	customer.POST("/orders/:id/tip", orderHandler.Tip)
	customer.POST("/orders/:id/rating", orderHandler.Rate)
	customer.POST("/orders/:id/complete", orderHandler.Complete)
	customer.POST("/orders/:id/payment/token", orderHandler.PaymentToken)

	admin := api.Group("")
	admin.Use(middleware.AuthRequired(auth, pkgAuth.RoleAdmin))
	admin.POST("/orders/:id/assign", orderHandler.Assign)
	admin.DELETE("/orders/:id", orderHandler.Delete)
	admin.POST("/orders/bulk-delete", orderHandler.BulkDelete)

	return engine
}
