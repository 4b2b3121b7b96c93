package server

import (
	handler "reversa-auctions/services/storefront/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(h *handler.StorefrontHandler) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	auctions := router.Group("/auctions")
	{
		auctions.GET("", h.ListAuctionsHandler)
		auctions.POST("", h.CreateAuctionHandler)
		auctions.GET("/:auction_id", h.GetAuctionHandler)
		auctions.GET("/:auction_id/winner", h.GetWinnerHandler)
		auctions.POST("/:auction_id/bids", h.PlaceBidHandler)
	}

	users := router.Group("/users")
	{
		users.POST("", h.RegisterHandler)
		users.PATCH("/:user_id/status", h.SetUserStatusHandler)
	}

	router.GET("/catalog/options", h.CatalogOptionsHandler)

	router.POST("/login", h.LoginHandler)

	banners := router.Group("/banners")
	{
		banners.GET("", h.ListBannersHandler)
		banners.POST("", h.CreateBannerHandler)
		banners.POST("/image", h.GenerateBannerImageHandler)
	}

	router.POST("/suggestions", h.SuggestListingHandler)

	return router
}
