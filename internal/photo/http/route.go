package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, identityMiddleware gin.HandlerFunc) {
	items := g.Group("/items/:id/photos")
	{
		items.POST("", identityMiddleware, h.Upload)
		items.GET("", h.ListByItem)
	}

	photos := g.Group("/photos")
	{
		photos.GET("/:id", h.Download)
		photos.GET("/:id/thumbnail", h.DownloadThumbnail)
		photos.DELETE("/:id", identityMiddleware, h.Delete)
	}
}
