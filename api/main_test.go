package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/Drolfothesgnir/hintstack/combiner"
	"github.com/Drolfothesgnir/hintstack/display"
	"github.com/Drolfothesgnir/hintstack/sink"
	"github.com/Drolfothesgnir/hintstack/util"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Configure the validator to use json tags for field names in errors
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}

	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

var testConfig = util.Config{
	HTTPServerAddress: "127.0.0.1:0",
	AllowedOrigins:    []string{"http://allowed.test"},
}

func newTestService(t *testing.T, registry *display.Registry) *Service {
	service, err := NewService(testConfig, registry)
	require.NoError(t, err)
	return service
}

// newDiscardRegistry returns a registry whose payloads go nowhere.
func newDiscardRegistry() *display.Registry {
	discard := sink.Func(func(_ context.Context, _ string, _ []byte) error { return nil })
	return display.NewRegistry(combiner.New(combiner.Options{}, discard), display.Options{Concurrency: 1})
}

// serve sends a JSON request through the service router. A string body is
// sent as is.
func serve(t *testing.T, service *Service, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	service.router.ServeHTTP(rec, req)
	return rec
}
