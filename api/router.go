package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Establishes HTTP router.
func (service *Service) setupRouter(server *http.Server) {
	router := gin.Default()

	router.Use(service.corsMiddleware())

	router.GET("/ping", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "pong")
	})

	viewerGroup := router.Group("/").Use(service.viewerMiddleware())

	viewerGroup.GET(ViewerURL, service.getViewer)
	viewerGroup.DELETE(ViewerURL, service.forgetViewer)

	viewerGroup.POST(ViewerElementsURL, service.showElement)
	viewerGroup.DELETE(ViewerElementURL, service.removeElement)
	viewerGroup.PATCH(ViewerVisibilityURL, service.setVisibility)

	viewerGroup.PUT(ViewerAspectRatioURL, service.setAspectRatio)
	viewerGroup.POST(ViewerSuspendURL, service.suspend)
	viewerGroup.POST(ViewerRefreshURL, service.refresh)
	viewerGroup.GET(ViewerPreviewURL, service.preview)

	server.Handler = router
	service.router = router
}
