package server

import (
	"github.com/gin-gonic/gin"

	bidding "realty-client/internal/biddingService"
	handler "realty-client/services/bidding/handler"
)

// Services bundles the sandbox business services the router exposes
type Services struct {
	Auth       *bidding.AuthService
	Properties *bidding.PropertyService
	Bidding    *bidding.BiddingService
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(svc Services) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	authHandler := handler.NewAuthHandler(svc.Auth)
	propertyHandler := handler.NewPropertyHandler(svc.Properties)
	biddingHandler := handler.NewBiddingHandler(svc.Bidding)

	requireAuth := RequireAuth(svc.Auth)
	optionalAuth := OptionalAuth(svc.Auth)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login/", authHandler.LoginHandler)
		auth.POST("/login/refresh/", authHandler.RefreshHandler)
		auth.POST("/register/", authHandler.RegisterHandler)
		auth.POST("/logout/", requireAuth, authHandler.LogoutHandler)
		auth.GET("/me/", requireAuth, authHandler.ProfileHandler)
	}

	properties := api.Group("/properties")
	{
		properties.GET("/", optionalAuth, propertyHandler.ListHandler)
		properties.POST("/", requireAuth, propertyHandler.CreateHandler)
		properties.GET("/my/", requireAuth, propertyHandler.MineHandler)
		properties.GET("/favorites/", requireAuth, propertyHandler.FavoritesHandler)
		properties.POST("/favorites/", requireAuth, propertyHandler.AddFavoriteHandler)
		properties.GET("/:id/", optionalAuth, propertyHandler.GetHandler)
		properties.DELETE("/:id/", requireAuth, propertyHandler.DeleteHandler)
		properties.DELETE("/:id/favorite/", requireAuth, propertyHandler.RemoveFavoriteHandler)
	}

	auctions := api.Group("/auctions", requireAuth)
	{
		auctions.GET("/", biddingHandler.ListAuctionsHandler)
		auctions.POST("/", biddingHandler.CreateAuctionHandler)
		auctions.GET("/:id/", biddingHandler.GetAuctionHandler)
		auctions.POST("/:id/bid/", biddingHandler.PlaceBidHandler)
	}

	return router
}
