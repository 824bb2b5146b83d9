package post

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	posts := r.Group("/posts")
	{
		posts.POST("", h.Create)
		posts.GET("", h.List)
		posts.GET("/:id", h.GetByID)
	}
}
