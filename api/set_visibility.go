package api

import (
	"net/http"

	"github.com/Drolfothesgnir/hintstack/element"
	"github.com/gin-gonic/gin"
)

type SetVisibilityRequest struct {
	Visible *bool `json:"visible" binding:"required"`
}

// setVisibility hides or shows a tag. The tag does not need to be on the
// display yet; it stays hidden when an element is shown under it later.
func (s *Service) setVisibility(ctx *gin.Context) {
	viewer := extractViewerFromCtx(ctx)

	var req SetVisibilityRequest
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

	d.SetVisible(element.ParseTag(ctx.Param("tag")), *req.Visible)
	ctx.Status(http.StatusNoContent)
}
