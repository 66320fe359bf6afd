package config

import (
	"context"
	"fmt"
	"time"

	"github.com/gocql/gocql"
	"github.com/rs/zerolog"
)

// NewCassandraSession ensures the keyspace exists, then opens the session
// the services run on. Startup does not retry: an unreachable cluster is
// surfaced to the caller, which treats it as fatal.
func NewCassandraSession(ctx context.Context, cfg *Cassandra) (*gocql.Session, error) {
	if err := ensureKeyspace(ctx, cfg); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("host", cfg.Host).Msg("failed to ensure keyspace")
		return nil, err
	}

	cluster := newCluster(cfg)
	cluster.Keyspace = cfg.Keyspace
	session, err := cluster.CreateSession()
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("host", cfg.Host).Msg("failed to connect to Cassandra")
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("host", cfg.Host).Str("keyspace", cfg.Keyspace).Msg("connected to Cassandra")
	return session, nil
}

// ensureKeyspace runs the keyspace DDL on a session without a bound
// keyspace, so first startup against a blank cluster works. IF NOT EXISTS
// keeps concurrent replica startups from erroring on each other.
func ensureKeyspace(ctx context.Context, cfg *Cassandra) error {
	cluster := newCluster(cfg)
	session, err := cluster.CreateSession()
	if err != nil {
		return err
	}
	defer session.Close()

	ddl := fmt.Sprintf(`
		CREATE KEYSPACE IF NOT EXISTS %s
		WITH replication = {'class': 'SimpleStrategy', 'replication_factor': %d}
	`, cfg.Keyspace, cfg.ReplicationFactor)

	return session.Query(ddl).WithContext(ctx).Exec()
}

func newCluster(cfg *Cassandra) *gocql.ClusterConfig {
	cluster := gocql.NewCluster(cfg.Host)
	cluster.Consistency = gocql.Quorum
	cluster.ConnectTimeout = 30 * time.Second
	cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(gocql.DCAwareRoundRobinPolicy(cfg.Datacenter))
	return cluster
}
