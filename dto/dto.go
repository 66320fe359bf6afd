package dto

import (
	"job-tracker/entities"
)

type CreateJobRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	AssignedTo  string `json:"assigned_to"`
	Priority    int    `json:"priority"`
}

type ClusterInfo struct {
	ConnectionStatus string `json:"connection_status"`
	Language         string `json:"language"`
}

// JobResponse carries the picked job plus the identity of the replica that
// served the request. Job is any so the empty-table placeholder can stand
// in for a missing record.
type JobResponse struct {
	Job         any         `json:"job"`
	Pod         string      `json:"pod"`
	PodIP       string      `json:"pod_ip"`
	Database    string      `json:"database"`
	ClusterInfo ClusterInfo `json:"cluster_info"`
}

// EmptyJob is the placeholder returned when the table has no rows; an
// empty database is a valid state, not an error.
var EmptyJob = map[string]string{
	"title":       "No jobs found",
	"description": "Database is empty",
}

type JobsResponse struct {
	Jobs     []entities.Job `json:"jobs"`
	Total    int            `json:"total"`
	Pod      string         `json:"pod"`
	Language string         `json:"language"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Pod       string `json:"pod"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
	Language  string `json:"language"`
	Version   string `json:"version"`
}

type InfoResponse struct {
	Service       string `json:"service"`
	Language      string `json:"language"`
	Framework     string `json:"framework"`
	Database      string `json:"database"`
	Version       string `json:"version"`
	Pod           string `json:"pod"`
	CassandraHost string `json:"cassandra_host"`
	Keyspace      string `json:"keyspace"`
	Datacenter    string `json:"datacenter"`
}

type FrontendInfoResponse struct {
	Service    string `json:"service"`
	Language   string `json:"language"`
	Framework  string `json:"framework"`
	Version    string `json:"version"`
	Pod        string `json:"pod"`
	BackendURL string `json:"backend_url"`
}

type SuccessResponse struct {
	Message  string `json:"message"`
	Pod      string `json:"pod"`
	Language string `json:"language"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Pod   string `json:"pod"`
}
