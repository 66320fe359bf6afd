package config

import (
	"errors"

	"github.com/spf13/viper"
)

type Config struct {
	App       App        `yaml:"app"`
	Server    Server     `yaml:"server"`
	Frontend  Frontend   `yaml:"frontend"`
	Cassandra *Cassandra `yaml:"cassandra"`
}

type App struct {
	Environment string `yaml:"environment"`
}

type Server struct {
	HttpPort string `yaml:"http_port"`
}

type Frontend struct {
	HttpPort   string `yaml:"http_port"`
	BackendURL string `yaml:"backend_url"`
}

type Cassandra struct {
	Host              string `yaml:"host"`
	Keyspace          string `yaml:"keyspace"`
	Datacenter        string `yaml:"datacenter"`
	ReplicationFactor int    `yaml:"replication_factor"`
}

// Load reads settings from the environment, with an optional config.yaml
// in path taking lower precedence. All keys have working defaults so the
// services start with an empty environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	v.SetDefault("cassandra_host", "cassandra.cassandra.svc.cluster.local")
	v.SetDefault("cassandra_keyspace", "job_tracker")
	v.SetDefault("cassandra_dc", "datacenter1")
	v.SetDefault("cassandra_replication_factor", 3)
	v.SetDefault("backend_url", "http://backend-service:5000")
	v.SetDefault("app_env", "develop")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	// PORT is shared by both services; each falls back to its own default.
	backendPort := v.GetString("port")
	if backendPort == "" {
		backendPort = "5000"
	}
	frontendPort := v.GetString("port")
	if frontendPort == "" {
		frontendPort = "8080"
	}

	return &Config{
		App: App{
			Environment: v.GetString("app_env"),
		},
		Server: Server{
			HttpPort: backendPort,
		},
		Frontend: Frontend{
			HttpPort:   frontendPort,
			BackendURL: v.GetString("backend_url"),
		},
		Cassandra: &Cassandra{
			Host:              v.GetString("cassandra_host"),
			Keyspace:          v.GetString("cassandra_keyspace"),
			Datacenter:        v.GetString("cassandra_dc"),
			ReplicationFactor: v.GetInt("cassandra_replication_factor"),
		},
	}, nil
}
