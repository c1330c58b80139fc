package approuters

import (
	"github.com/gin-gonic/gin"

	"github.com/YashRana52/INSTRAGRAM/internal/configuration"
	"github.com/YashRana52/INSTRAGRAM/internal/handler"
)

func PostRouters(router *gin.Engine, container *configuration.Container) {
	postRoute := router.Group("/api/v1/post", handler.RequireUser())
	{
		postRoute.POST("/addpost", container.PostHandler.AddPost)
		postRoute.GET("/all", container.PostHandler.GetAllPosts)
		postRoute.GET("/userpost/all", container.PostHandler.GetUserPosts)
		postRoute.POST("/:id/like", container.PostHandler.LikePost)
		postRoute.POST("/:id/dislike", container.PostHandler.DislikePost)
		postRoute.POST("/:id/comment", container.PostHandler.AddComment)
		postRoute.GET("/:id/comment/all", container.PostHandler.GetComments)
		postRoute.DELETE("/delete/:id", container.PostHandler.DeletePost)
		postRoute.GET("/:id/bookmark", container.PostHandler.BookmarkPost)
	}
}
