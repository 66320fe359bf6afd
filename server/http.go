package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"job-tracker/config"
	"job-tracker/constant"
	jobHandler "job-tracker/handler"
	"job-tracker/repository"
	"job-tracker/service"
)

// RunBackend starts the REST API. Schema initialization failure is fatal:
// the process never serves traffic against an unreachable or half-set-up
// store.
func RunBackend(cfg *config.Config) {
	ctx, cancel := signal.NotifyContext(setupLogger(cfg), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Msg("starting backend")
	if cfg.App.Environment == constant.EnvironmentProduction.String() {
		gin.SetMode(gin.ReleaseMode)
	}

	session, err := config.NewCassandraSession(ctx, cfg.Cassandra)
	if err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).Msg("cannot reach Cassandra")
	}

	repo := repository.NewRepo(session)
	defer repo.Close()

	if err := repo.InitializeSchema(ctx); err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).Msg("schema initialization failed")
	}

	jobs := service.NewJobService(repo)
	h := jobHandler.NewJobHandler(jobs, cfg)

	r := gin.Default()
	r.Use(allowAllCORS())
	h.Register(r)

	serve(ctx, r, cfg.Server.HttpPort)
}

// serve runs the engine until the context is cancelled, then shuts down
// with a bounded grace period for in-flight requests. Request contexts
// carry the logger but not the signal cancellation, so in-flight work can
// drain during shutdown.
func serve(ctx context.Context, r *gin.Engine, port string) {
	base := zerolog.Ctx(ctx).WithContext(context.Background())
	srv := http.Server{
		Handler:           r,
		Addr:              fmt.Sprintf(":%s", port),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return base
		},
	}

	go func() {
		zerolog.Ctx(ctx).Info().Str("port", port).Msg("start http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zerolog.Ctx(ctx).Error().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	zerolog.Ctx(ctx).Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("shutdown")
	}

	zerolog.Ctx(ctx).Info().Msg("server shutdown")
}

func allowAllCORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"*"},
	})
}

func setupLogger(cfg *config.Config) context.Context {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	if cfg.App.Environment == constant.EnvironmentProduction.String() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	return ctx
}
