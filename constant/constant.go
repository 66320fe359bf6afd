package constant

type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
)

func (s JobStatus) String() string {
	return string(s)
}

type Environment string

const (
	EnvironmentProduction Environment = "production"
	EnvironmentStaging    Environment = "staging"
	EnvironmentDevelop    Environment = "develop"
)

func (e Environment) String() string {
	return string(e)
}

const (
	DefaultAssignee = "unassigned"
	DefaultPriority = 1

	DatabaseName   = "Cassandra"
	LanguageName   = "Go"
	FrameworkName  = "Gin"
	ServiceVersion = "1.0.0"
)
