package router

import (
	"ashiato/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)
	users.GET("/email-verification/:code", handler.VerifyEmail)

	users.POST("/logout", handler.Logout, authRequired)
	users.GET("/me", handler.Me, authRequired)
	users.PUT("/me", handler.UpdateProfile, authRequired)
}

func SetupSpotRoutes(api *echo.Group, handler *rest.SpotHandler, authRequired echo.MiddlewareFunc) {
	spots := api.Group("/spots", authRequired)

	spots.POST("", handler.CreateSpot)
	spots.GET("", handler.GetMySpots)
	spots.GET("/search", handler.GetSpotsByRegion)
	spots.GET("/:id", handler.GetSpotByID)
	spots.PUT("/:id", handler.UpdateSpot)
	spots.DELETE("/:id", handler.DeleteSpot)
}

func SetupFollowRoutes(api *echo.Group, handler *rest.FollowHandler, authRequired echo.MiddlewareFunc) {
	follows := api.Group("/follows", authRequired)

	follows.POST("/:id", handler.Follow)
	follows.DELETE("/:id", handler.Unfollow)
	follows.GET("/following", handler.GetFollowing)
	follows.GET("/followers", handler.GetFollowers)
}

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler, authRequired echo.MiddlewareFunc) {
	reco := api.Group("/recommendations", authRequired)

	reco.GET("", handler.Recommend)
	reco.POST("/interactions", handler.RecordInteraction)
	reco.POST("/preferences/refresh", handler.RefreshPreferences)
}
