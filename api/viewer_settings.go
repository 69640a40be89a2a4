package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type SetAspectRatioRequest struct {
	AspectRatio float64 `json:"aspect_ratio" binding:"required,gt=0,lte=10"`
}

type SuspendRequest struct {
	DurationMS int64 `json:"duration_ms" binding:"required,gt=0,lte=3600000"`
}

type ViewerResponse struct {
	Viewer      string  `json:"viewer"`
	Elements    int     `json:"elements"`
	AspectRatio float64 `json:"aspect_ratio"`
}

func (s *Service) getViewer(ctx *gin.Context) {
	viewer := extractViewerFromCtx(ctx)

	d, ok := s.registry.Lookup(viewer)
	if !ok {
		respondViewerNotFound(ctx, viewer)
		return
	}

	ctx.JSON(http.StatusOK, ViewerResponse{
		Viewer:      viewer,
		Elements:    d.Len(),
		AspectRatio: d.AspectRatio(),
	})
}

// forgetViewer drops the display of a viewer that left. Forgetting an
// unknown viewer is not an error.
func (s *Service) forgetViewer(ctx *gin.Context) {
	s.registry.Forget(extractViewerFromCtx(ctx))
	ctx.Status(http.StatusNoContent)
}

// setAspectRatio is called when the viewer connects or resizes, so it
// creates the display if needed.
func (s *Service) setAspectRatio(ctx *gin.Context) {
	viewer := extractViewerFromCtx(ctx)

	var req SetAspectRatioRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(
			http.StatusBadRequest,
			NewErrorResponse(ErrInvalidParams, ExtractErrorFields(err)...))
		return
	}

	if err := s.registry.Get(viewer).SetAspectRatio(req.AspectRatio); err != nil {
		respondElementError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// suspend holds back refreshes while a hint from another source is shown.
func (s *Service) suspend(ctx *gin.Context) {
	viewer := extractViewerFromCtx(ctx)

	var req SuspendRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(
			http.StatusBadRequest,
			NewErrorResponse(ErrInvalidParams, ExtractErrorFields(err)...))
		return
	}

	d, ok := s.registry.Lookup(viewer)
	if !ok {
		respondViewerNotFound(ctx, viewer)
		return
	}

	d.SuspendFor(time.Duration(req.DurationMS) * time.Millisecond)
	ctx.Status(http.StatusNoContent)
}

func (s *Service) refresh(ctx *gin.Context) {
	viewer := extractViewerFromCtx(ctx)

	d, ok := s.registry.Lookup(viewer)
	if !ok {
		respondViewerNotFound(ctx, viewer)
		return
	}

	d.Update()
	ctx.Status(http.StatusAccepted)
}
