package postimage

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the post image routes. None of them require authentication.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	images := r.Group("/postimages")
	{
		images.POST("", h.Upload)
		images.GET("", h.List)
		images.GET("/:id", h.GetByID)
	}
}
