package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/Drolfothesgnir/hintstack/display"
	"github.com/Drolfothesgnir/hintstack/util"
	"github.com/gin-gonic/gin"
)

const (
	// api routes
	ViewerURL            = "/viewers/:viewer"
	ViewerElementsURL    = ViewerURL + "/elements"
	ViewerElementURL     = ViewerElementsURL + "/:tag"
	ViewerVisibilityURL  = ViewerElementURL + "/visibility"
	ViewerAspectRatioURL = ViewerURL + "/aspect-ratio"
	ViewerSuspendURL     = ViewerURL + "/suspend"
	ViewerRefreshURL     = ViewerURL + "/refresh"
	ViewerPreviewURL     = ViewerURL + "/preview"
)

var (
	// api errors
	ErrInvalidParams   = errors.New("invalid params")
	ErrInvalidViewer   = errors.New("invalid viewer id")
	ErrViewerNotFound  = errors.New("viewer not found")
	ErrElementNotFound = errors.New("element not found")
	ErrInternal        = errors.New("internal error")
)

type Service struct {
	config   util.Config
	registry *display.Registry
	server   *http.Server
	router   *gin.Engine
}

// Returns new service instance serving the displays of registry.
func NewService(config util.Config, registry *display.Registry) (*Service, error) {
	host, port, err := config.ExtractHostPort()
	if err != nil {
		return nil, err
	}

	service := &Service{
		config:   config,
		registry: registry,
	}

	server := &http.Server{
		Addr: net.JoinHostPort(host, port),
	}

	// caps how long a client can take to send just the headers (blocks slowloris).
	server.ReadHeaderTimeout = 5 * time.Second
	// caps time to read the full request (incl. body).
	server.ReadTimeout = 10 * time.Second
	// caps time spent writing the response
	server.WriteTimeout = 15 * time.Second
	// how long to keep idle keep-alive connections open.
	server.IdleTimeout = 60 * time.Second

	service.setupRouter(server)

	service.server = server

	return service, nil
}

// Addr is the address the server listens on.
func (service *Service) Addr() string {
	return service.server.Addr
}

// Start runs the HTTP server
func (service *Service) Start() error {
	return service.server.ListenAndServe()
}

func (service *Service) Shutdown(ctx context.Context) error {
	return service.server.Shutdown(ctx)
}
