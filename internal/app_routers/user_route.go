package approuters

import (
	"github.com/gin-gonic/gin"

	"github.com/YashRana52/INSTRAGRAM/internal/configuration"
	"github.com/YashRana52/INSTRAGRAM/internal/handler"
)

func UserRouters(router *gin.Engine, container *configuration.Container) {
	userRoute := router.Group("/api/v1/user", handler.RequireUser())
	{
		userRoute.GET("/:id/profile", container.UserHandler.GetProfile)
		userRoute.GET("/me", container.UserHandler.Me)
		userRoute.POST("/profile/edit", container.UserHandler.EditProfile)
		userRoute.GET("/suggested", container.UserHandler.GetSuggestedUsers)
		userRoute.POST("/followorunfollow/:id", container.UserHandler.FollowOrUnfollow)
	}
}
