package api

import (
	"errors"
	"net/http"

	"github.com/Drolfothesgnir/hintstack/element"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ShowElementResponse struct {
	Viewer string `json:"viewer"`
	Tag    string `json:"tag"`
}

// showElement adds a basic element to the viewer's display, replacing the
// element with the same tag.
func (s *Service) showElement(ctx *gin.Context) {
	viewer := extractViewerFromCtx(ctx)

	var req element.Definition
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(
			http.StatusBadRequest,
			NewErrorResponse(ErrInvalidParams, ExtractErrorFields(err)...))
		return
	}

	el, err := req.Build()
	if err != nil {
		respondElementError(ctx, err)
		return
	}

	tag := req.ElementTag()
	d := s.registry.Get(viewer)

	if duration := req.Duration(); duration > 0 {
		err = d.ShowFor(tag, el, duration)
	} else {
		err = d.Show(tag, el)
	}
	if err != nil {
		respondElementError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, ShowElementResponse{Viewer: viewer, Tag: tag.String()})
}

// respondElementError maps argument errors to 400 and everything else to 500.
func respondElementError(ctx *gin.Context, err error) {
	var argErr *element.ArgumentError
	if errors.As(err, &argErr) {
		ctx.JSON(
			http.StatusBadRequest,
			NewErrorResponse(ErrInvalidParams, ErrorField{argErr.Field, argErr.Reason}))
		return
	}

	log.Error().Err(err).Str("path", ctx.FullPath()).Msg("element request failed")
	ctx.JSON(http.StatusInternalServerError, NewErrorResponse(ErrInternal))
}
