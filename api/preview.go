package api

import (
	"net/http"

	"github.com/Drolfothesgnir/hintstack/combiner"
	"github.com/Drolfothesgnir/hintstack/param"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type PreviewParameter struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

type PreviewResponse struct {
	Viewer     string             `json:"viewer"`
	Size       int                `json:"size"`
	MessageID  uint16             `json:"message_id"`
	HintType   uint8              `json:"hint_type"`
	Duration   float32            `json:"duration"`
	Parameters []PreviewParameter `json:"parameters"`
	Content    string             `json:"content"`
	Expanded   string             `json:"expanded"`
}

// preview returns the payload the viewer would receive now, decoded.
func (s *Service) preview(ctx *gin.Context) {
	viewer := extractViewerFromCtx(ctx)

	d, ok := s.registry.Lookup(viewer)
	if !ok {
		respondViewerNotFound(ctx, viewer)
		return
	}

	payload, err := d.Preview()
	if err != nil {
		log.Error().Err(err).Str("viewer", viewer).Msg("cannot build preview")
		ctx.JSON(http.StatusInternalServerError, NewErrorResponse(ErrInternal))
		return
	}

	frame, err := combiner.Decode(payload)
	if err != nil {
		log.Error().Err(err).Str("viewer", viewer).Msg("cannot decode preview")
		ctx.JSON(http.StatusInternalServerError, NewErrorResponse(ErrInternal))
		return
	}

	resp := PreviewResponse{
		Viewer:     viewer,
		Size:       len(payload),
		MessageID:  frame.MessageID,
		HintType:   frame.HintType,
		Duration:   frame.Duration,
		Parameters: make([]PreviewParameter, 0, len(frame.Parameters)),
		Content:    frame.Content,
		Expanded:   frame.Expand(),
	}

	for _, p := range frame.Parameters {
		resp.Parameters = append(resp.Parameters, previewParameter(p))
	}

	ctx.JSON(http.StatusOK, resp)
}

func previewParameter(p param.Parameter) PreviewParameter {
	pp := PreviewParameter{Type: p.Type().String()}

	switch p := p.(type) {
	case param.String:
		pp.Value = p.Value
	case param.Item:
		pp.Value = p.ItemType
	case param.Keybind:
		pp.Value = map[string]any{"id": p.ID, "format": p.Format}
	case *param.Animated:
		pp.Value = map[string]any{"keyframes": p.Value.Len(), "offset": p.Offset}
	}

	return pp
}
