package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	ctxViewerKey   = "viewer"
	viewerIDChecks = "required,max=64,printascii"
)

// This middleware checks the viewer id in the URL with the same validator
// gin uses for request bodies.
func (s *Service) viewerMiddleware() gin.HandlerFunc {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		v = validator.New()
	}

	return func(ctx *gin.Context) {
		viewer := ctx.Param("viewer")

		if err := v.Var(viewer, viewerIDChecks); err != nil {
			msg := fmt.Sprintf("viewer id [%s] is invalid", viewer)
			if fields := ExtractErrorFields(err); len(fields) > 0 {
				msg += ": " + fields[0].ErrorMessage
			}

			ctx.AbortWithStatusJSON(
				http.StatusBadRequest,
				NewErrorResponse(ErrInvalidViewer, ErrorField{"viewer", msg}),
			)
			return
		}

		ctx.Set(ctxViewerKey, viewer)
		ctx.Next()
	}
}

// Helper function to get the viewer id after middleware check.
func extractViewerFromCtx(ctx *gin.Context) string {
	return ctx.MustGet(ctxViewerKey).(string)
}
