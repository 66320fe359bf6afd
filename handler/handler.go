package handler

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"job-tracker/config"
	"job-tracker/constant"
	"job-tracker/dto"
	"job-tracker/service"
)

// JobHandler exposes the job store over REST. Every response carries the
// serving replica's hostname so an external observer can see which replica
// answered.
type JobHandler struct {
	jobs service.JobService
	cfg  *config.Config
	pod  string
}

func NewJobHandler(jobs service.JobService, cfg *config.Config) *JobHandler {
	pod, _ := os.Hostname()
	return &JobHandler{
		jobs: jobs,
		cfg:  cfg,
		pod:  pod,
	}
}

func (h *JobHandler) Register(r gin.IRouter) {
	r.GET("/", h.GetRandomJob)
	r.GET("/jobs", h.GetAllJobs)
	r.POST("/jobs", h.CreateJob)
	r.GET("/health", h.Health)
	r.GET("/info", h.Info)
}

func (h *JobHandler) GetRandomJob(c *gin.Context) {
	job, err := h.jobs.PickOne(c.Request.Context())
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("failed to pick job")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to fetch job from database", Pod: h.pod})
		return
	}

	response := dto.JobResponse{
		Job:      job,
		Pod:      h.pod,
		PodIP:    c.Request.Host,
		Database: constant.DatabaseName,
		ClusterInfo: dto.ClusterInfo{
			ConnectionStatus: "connected",
			Language:         constant.LanguageName,
		},
	}
	if job == nil {
		response.Job = dto.EmptyJob
	}

	c.JSON(http.StatusOK, response)
}

func (h *JobHandler) GetAllJobs(c *gin.Context) {
	jobs, err := h.jobs.ListJobs(c.Request.Context())
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("failed to list jobs")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to fetch jobs", Pod: h.pod})
		return
	}

	c.JSON(http.StatusOK, dto.JobsResponse{
		Jobs:     jobs,
		Total:    len(jobs),
		Pod:      h.pod,
		Language: constant.LanguageName,
	})
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid JSON body", Pod: h.pod})
		return
	}

	_, err := h.jobs.CreateJob(c.Request.Context(), req)
	if errors.Is(err, service.ErrValidation) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "title and description are required", Pod: h.pod})
		return
	}
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("failed to create job")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to create job", Pod: h.pod})
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message:  "Job created successfully",
		Pod:      h.pod,
		Language: constant.LanguageName,
	})
}

// Health always answers 200; the body encodes connectivity. Probes and
// humans read the database field, not the status code.
func (h *JobHandler) Health(c *gin.Context) {
	response := dto.HealthResponse{
		Status:    "healthy",
		Pod:       h.pod,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Database:  "connected",
		Language:  constant.LanguageName,
		Version:   constant.ServiceVersion,
	}

	if err := h.jobs.Ping(c.Request.Context()); err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("health probe failed")
		response.Status = "unhealthy"
		response.Database = "disconnected"
	}

	c.JSON(http.StatusOK, response)
}

func (h *JobHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, dto.InfoResponse{
		Service:       "Backend API",
		Language:      constant.LanguageName,
		Framework:     constant.FrameworkName,
		Database:      constant.DatabaseName,
		Version:       constant.ServiceVersion,
		Pod:           h.pod,
		CassandraHost: h.cfg.Cassandra.Host,
		Keyspace:      h.cfg.Cassandra.Keyspace,
		Datacenter:    h.cfg.Cassandra.Datacenter,
	})
}
