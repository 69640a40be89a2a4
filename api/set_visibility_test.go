package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Drolfothesgnir/hintstack/element"
	"github.com/stretchr/testify/require"
)

func previewOf(t *testing.T, service *Service, viewer string) PreviewResponse {
	t.Helper()

	rec := serve(t, service, http.MethodGet, "/viewers/"+viewer+"/preview", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PreviewResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestSetVisibility(t *testing.T) {
	registry := newDiscardRegistry()
	service := newTestService(t, registry)

	rec := serve(t, service, http.MethodPost, "/viewers/alice/elements", element.Definition{Tag: "secret", Text: "hidden text"})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, previewOf(t, service, "alice").Content, "hidden text")

	rec = serve(t, service, http.MethodPatch, "/viewers/alice/elements/secret/visibility", map[string]any{"visible": false})
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NotContains(t, previewOf(t, service, "alice").Content, "hidden text")

	rec = serve(t, service, http.MethodPatch, "/viewers/alice/elements/secret/visibility", map[string]any{"visible": true})
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Contains(t, previewOf(t, service, "alice").Content, "hidden text")
}

func TestSetVisibility_Invalid(t *testing.T) {
	registry := newDiscardRegistry()
	service := newTestService(t, registry)
	registry.Get("alice")

	rec := serve(t, service, http.MethodPatch, "/viewers/alice/elements/secret/visibility", map[string]any{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	res, err := extractErrorFromBuffer(rec.Body)
	require.NoError(t, err)
	require.Equal(t, []ErrorField{{"visible", "this field is required"}}, res.Fields)

	rec = serve(t, service, http.MethodPatch, "/viewers/bob/elements/secret/visibility", map[string]any{"visible": true})
	require.Equal(t, http.StatusNotFound, rec.Code)
}
