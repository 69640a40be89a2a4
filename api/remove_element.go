package api

import (
	"fmt"
	"net/http"

	"github.com/Drolfothesgnir/hintstack/element"
	"github.com/gin-gonic/gin"
)

func (s *Service) removeElement(ctx *gin.Context) {
	viewer := extractViewerFromCtx(ctx)
	tag := element.ParseTag(ctx.Param("tag"))

	d, ok := s.registry.Lookup(viewer)
	if !ok {
		respondViewerNotFound(ctx, viewer)
		return
	}

	if !d.Remove(tag) {
		errField := ErrorField{"tag", fmt.Sprintf("viewer [%s] has no element [%s]", viewer, tag)}
		ctx.JSON(http.StatusNotFound, NewErrorResponse(ErrElementNotFound, errField))
		return
	}

	ctx.Status(http.StatusNoContent)
}

func respondViewerNotFound(ctx *gin.Context, viewer string) {
	errField := ErrorField{"viewer", fmt.Sprintf("viewer [%s] has no display", viewer)}
	ctx.JSON(http.StatusNotFound, NewErrorResponse(ErrViewerNotFound, errField))
}
