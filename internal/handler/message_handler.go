package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/YashRana52/INSTRAGRAM/internal/service"
)

type MessageHandler interface {
	SendMessage(c *gin.Context)
	GetMessages(c *gin.Context)
}

type messageHandler struct {
	service service.MessageService
}

func NewMessageHandler(service service.MessageService) MessageHandler {
	return &messageHandler{
		service: service,
	}
}

type sendMessageRequest struct {
	TextMessage string `json:"textMessage"`
}

func (h *messageHandler) SendMessage(c *gin.Context) {
	senderID := currentUser(c)
	receiverID := c.Param("id")

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	msg, err := h.service.SendMessage(c.Request.Context(), senderID, receiverID, req.TextMessage)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Message cannot be empty",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to send message",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"newMessage": msg,
	})
}

func (h *messageHandler) GetMessages(c *gin.Context) {
	userID := currentUser(c)
	otherID := c.Param("id")

	page := c.DefaultQuery("page", "1")
	pageNumber, err := strconv.ParseInt(page, 10, 64)
	if err != nil || pageNumber < 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid page number",
		})
		return
	}

	msgs, err := h.service.GetMessages(c.Request.Context(), userID, otherID, pageNumber)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to get messages",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"messages": msgs,
	})
}
