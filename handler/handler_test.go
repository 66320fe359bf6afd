package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"job-tracker/config"
	"job-tracker/dto"
	"job-tracker/entities"
	"job-tracker/repository"
	"job-tracker/service"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fakeRepo struct {
	jobs []entities.Job
	err  error
}

func (f *fakeRepo) InitializeSchema(ctx context.Context) error { return f.err }

func (f *fakeRepo) ListJobs(ctx context.Context) ([]entities.Job, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]entities.Job{}, f.jobs...), nil
}

func (f *fakeRepo) SampleJobs(ctx context.Context, limit int) ([]entities.Job, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.jobs) < limit {
		limit = len(f.jobs)
	}
	return append([]entities.Job{}, f.jobs[:limit]...), nil
}

func (f *fakeRepo) InsertJob(ctx context.Context, job entities.Job) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, job)
	return nil
}

func (f *fakeRepo) Ping(ctx context.Context) error { return f.err }

func (f *fakeRepo) Close() {}

func newTestRouter(repo repository.JobRepository) *gin.Engine {
	cfg := &config.Config{
		Cassandra: &config.Cassandra{
			Host:       "cassandra.test",
			Keyspace:   "job_tracker",
			Datacenter: "datacenter1",
		},
	}
	h := NewJobHandler(service.NewJobService(repo), cfg)
	r := gin.New()
	h.Register(r)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetRandomJobEmptyStore(t *testing.T) {
	r := newTestRouter(&fakeRepo{})

	w := doRequest(t, r, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Job      map[string]string `json:"job"`
		Pod      string            `json:"pod"`
		Database string            `json:"database"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "No jobs found", resp.Job["title"])
	assert.Equal(t, "Database is empty", resp.Job["description"])
	assert.Equal(t, "Cassandra", resp.Database)
	hostname, _ := os.Hostname()
	assert.Equal(t, hostname, resp.Pod)
}

func TestGetRandomJobStorageError(t *testing.T) {
	r := newTestRouter(&fakeRepo{err: repository.ErrStorageUnavailable})

	w := doRequest(t, r, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
	assert.NotEmpty(t, resp.Pod)
}

// Handlers log through the logger carried by the request context, the same
// one the server installs for every connection.
func TestHandlerLogsViaRequestContext(t *testing.T) {
	r := newTestRouter(&fakeRepo{err: repository.ErrStorageUnavailable})

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(logger.WithContext(req.Context()))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, buf.String(), "failed to pick job")
	assert.Contains(t, buf.String(), "storage unavailable")
}

func TestGetAllJobs(t *testing.T) {
	repo := &fakeRepo{jobs: []entities.Job{
		{ID: "1", Title: "a"},
		{ID: "2", Title: "b"},
	}}
	r := newTestRouter(repo)

	w := doRequest(t, r, http.MethodGet, "/jobs", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.JobsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Jobs, 2)
}

func TestGetAllJobsStorageError(t *testing.T) {
	r := newTestRouter(&fakeRepo{err: repository.ErrStorageUnavailable})

	w := doRequest(t, r, http.MethodGet, "/jobs", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCreateJobMissingFields(t *testing.T) {
	for _, body := range []string{
		`{"description":"D"}`,
		`{"title":"T"}`,
		`{"title":"","description":"D"}`,
	} {
		repo := &fakeRepo{}
		r := newTestRouter(repo)

		w := doRequest(t, r, http.MethodPost, "/jobs", []byte(body))
		require.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Error)
		assert.Empty(t, repo.jobs, "nothing may be written for body %s", body)
	}
}

func TestCreateJobInvalidJSON(t *testing.T) {
	r := newTestRouter(&fakeRepo{})

	w := doRequest(t, r, http.MethodPost, "/jobs", []byte(`{not json`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateThenListRoundTrip(t *testing.T) {
	repo := &fakeRepo{}
	r := newTestRouter(repo)

	w := doRequest(t, r, http.MethodPost, "/jobs", []byte(`{"title":"T","description":"D"}`))
	require.Equal(t, http.StatusOK, w.Code)

	var ack dto.SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ack))
	assert.Equal(t, "Job created successfully", ack.Message)
	assert.NotEmpty(t, ack.Pod)

	w = doRequest(t, r, http.MethodGet, "/jobs", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.JobsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	job := resp.Jobs[0]
	assert.Equal(t, "T", job.Title)
	assert.Equal(t, "D", job.Description)
	assert.Equal(t, "pending", job.Status)
	assert.Equal(t, "unassigned", job.AssignedTo)
	assert.Equal(t, 1, job.Priority)
}

// The health endpoint always answers 200; connectivity lives in the body.
func TestHealthAlwaysOK(t *testing.T) {
	t.Run("connected", func(t *testing.T) {
		r := newTestRouter(&fakeRepo{})

		w := doRequest(t, r, http.MethodGet, "/health", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "connected", resp.Database)
		assert.NotEmpty(t, resp.Timestamp)
	})

	t.Run("disconnected", func(t *testing.T) {
		r := newTestRouter(&fakeRepo{err: repository.ErrStorageUnavailable})

		w := doRequest(t, r, http.MethodGet, "/health", nil)
		require.Equal(t, http.StatusOK, w.Code, "health must stay 200 when the database is down")

		var resp dto.HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "unhealthy", resp.Status)
		assert.Equal(t, "disconnected", resp.Database)
	})
}

func TestInfo(t *testing.T) {
	r := newTestRouter(&fakeRepo{})

	w := doRequest(t, r, http.MethodGet, "/info", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.InfoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Backend API", resp.Service)
	assert.Equal(t, "Cassandra", resp.Database)
	assert.Equal(t, "cassandra.test", resp.CassandraHost)
	assert.Equal(t, "job_tracker", resp.Keyspace)
	assert.Equal(t, "datacenter1", resp.Datacenter)
}
