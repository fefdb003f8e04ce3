package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/boostlane/panel/internal/server/http/handlers"
	"github.com/boostlane/panel/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.PanelFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	bulkHandler := handlers.NewBulkOrderHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	walletHandler := handlers.NewWalletHandler(facade)

	api := engine.Group("/api")
	api.GET("/services", catalogHandler.List)

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	authorized := api.Group("")
	authorized.Use(middleware.AuthRequired(facade))
	authorized.POST("/orders/mass/preview", bulkHandler.Preview)
	authorized.POST("/orders/mass", bulkHandler.Submit)
	authorized.GET("/orders", orderHandler.List)
	authorized.GET("/orders/batch/:batchId", orderHandler.Batch)
	authorized.GET("/wallet", walletHandler.Summary)
	authorized.GET("/wallet/transactions", walletHandler.History)
	authorized.POST("/wallet/topup", walletHandler.TopUp)

	return engine
}
