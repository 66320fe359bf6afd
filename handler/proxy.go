package handler

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"job-tracker/constant"
	"job-tracker/dto"
	"job-tracker/pkg/backend"
)

// ProxyHandler relays the dashboard's API calls to the backend service,
// preserving the backend's status code and body.
type ProxyHandler struct {
	backend *backend.Client
	pod     string
}

func NewProxyHandler(client *backend.Client) *ProxyHandler {
	pod, _ := os.Hostname()
	return &ProxyHandler{
		backend: client,
		pod:     pod,
	}
}

func (h *ProxyHandler) Register(r gin.IRouter) {
	api := r.Group("/api")
	api.GET("/job", h.GetJob)
	api.GET("/jobs", h.GetJobs)
	api.POST("/jobs", h.CreateJob)
	api.GET("/health", h.Health)
	api.GET("/info", h.Info)
}

func (h *ProxyHandler) GetJob(c *gin.Context) {
	h.relay(c, func(ctx context.Context) (*backend.Response, error) {
		return h.backend.Get(ctx, "/")
	})
}

func (h *ProxyHandler) GetJobs(c *gin.Context) {
	h.relay(c, func(ctx context.Context) (*backend.Response, error) {
		return h.backend.Get(ctx, "/jobs")
	})
}

func (h *ProxyHandler) CreateJob(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body", Pod: h.pod})
		return
	}

	h.relay(c, func(ctx context.Context) (*backend.Response, error) {
		return h.backend.Post(ctx, "/jobs", payload)
	})
}

func (h *ProxyHandler) Health(c *gin.Context) {
	h.relay(c, func(ctx context.Context) (*backend.Response, error) {
		return h.backend.Get(ctx, "/health")
	})
}

func (h *ProxyHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FrontendInfoResponse{
		Service:    "Frontend Application",
		Language:   constant.LanguageName,
		Framework:  constant.FrameworkName,
		Version:    constant.ServiceVersion,
		Pod:        h.pod,
		BackendURL: h.backend.BaseURL(),
	})
}

func (h *ProxyHandler) relay(c *gin.Context, call func(ctx context.Context) (*backend.Response, error)) {
	resp, err := call(c.Request.Context())
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("backend", h.backend.BaseURL()).Msg("backend unreachable")
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "backend service unavailable", Pod: h.pod})
		return
	}

	c.Data(resp.StatusCode, "application/json", resp.Body)
}
