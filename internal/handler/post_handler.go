package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/YashRana52/INSTRAGRAM/internal/service"
)

type PostHandler interface {
	AddPost(c *gin.Context)
	GetAllPosts(c *gin.Context)
	GetUserPosts(c *gin.Context)
	LikePost(c *gin.Context)
	DislikePost(c *gin.Context)
	AddComment(c *gin.Context)
	GetComments(c *gin.Context)
	DeletePost(c *gin.Context)
	BookmarkPost(c *gin.Context)
}

type postHandler struct {
	service service.PostService
}

func NewPostHandler(service service.PostService) PostHandler {
	return &postHandler{
		service: service,
	}
}

type addPostRequest struct {
	Caption string `json:"caption"`
	Image   string `json:"image"`
}

func (h *postHandler) AddPost(c *gin.Context) {
	authorID := currentUser(c)

	var req addPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	post, err := h.service.CreatePost(c.Request.Context(), authorID, req.Caption, req.Image)
	if err != nil {
		if errors.Is(err, service.ErrImageRequired) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Image required",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal Server Error",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "New post added",
		"post":    post,
	})
}

func (h *postHandler) GetAllPosts(c *gin.Context) {
	posts, err := h.service.GetFeed(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal Server Error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"posts":   posts,
	})
}

func (h *postHandler) GetUserPosts(c *gin.Context) {
	posts, err := h.service.GetUserPosts(c.Request.Context(), currentUser(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal Server Error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"posts":   posts,
	})
}

func (h *postHandler) LikePost(c *gin.Context) {
	h.updateLike(c, true)
}

func (h *postHandler) DislikePost(c *gin.Context) {
	h.updateLike(c, false)
}

func (h *postHandler) updateLike(c *gin.Context, like bool) {
	userID := currentUser(c)
	postID := c.Param("id")

	var err error
	if like {
		err = h.service.LikePost(c.Request.Context(), userID, postID)
	} else {
		err = h.service.DislikePost(c.Request.Context(), userID, postID)
	}
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Post not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Server error",
		})
		return
	}

	message := "Post liked"
	if !like {
		message = "Post disliked"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"userId":  userID,
	})
}

type addCommentRequest struct {
	Text string `json:"text"`
}

func (h *postHandler) AddComment(c *gin.Context) {
	userID := currentUser(c)
	postID := c.Param("id")

	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	comment, err := h.service.AddComment(c.Request.Context(), userID, postID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyComment):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Text is required",
			})
		case errors.Is(err, service.ErrPostNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Post not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Internal Server Error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Comment Added",
		"comment": comment,
	})
}

func (h *postHandler) GetComments(c *gin.Context) {
	comments, err := h.service.GetComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal Server Error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"comments": comments,
	})
}

func (h *postHandler) DeletePost(c *gin.Context) {
	userID := currentUser(c)
	postID := c.Param("id")

	if err := h.service.DeletePost(c.Request.Context(), userID, postID); err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Post not found",
			})
		case errors.Is(err, service.ErrNotPostAuthor):
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "You are not allowed to delete this post",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Internal Server Error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Post deleted successfully",
	})
}

func (h *postHandler) BookmarkPost(c *gin.Context) {
	userID := currentUser(c)
	postID := c.Param("id")

	state, err := h.service.BookmarkPost(c.Request.Context(), userID, postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Post not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal Server Error",
		})
		return
	}

	message := "Post bookmarked"
	if state == service.BookmarkUnsaved {
		message = "Post removed from bookmark"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"type":    state,
		"message": message,
	})
}
