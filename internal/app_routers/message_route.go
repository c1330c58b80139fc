package approuters

import (
	"github.com/gin-gonic/gin"

	"github.com/YashRana52/INSTRAGRAM/internal/configuration"
	"github.com/YashRana52/INSTRAGRAM/internal/handler"
)

func MessageRouters(router *gin.Engine, container *configuration.Container) {
	messageRoute := router.Group("/api/v1/message", handler.RequireUser())
	{
		messageRoute.POST("/send/:id", container.MessageHandler.SendMessage)
		messageRoute.GET("/all/:id", container.MessageHandler.GetMessages)
	}
}
