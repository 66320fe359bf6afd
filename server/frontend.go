package server

import (
	"embed"
	"html/template"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"job-tracker/config"
	"job-tracker/constant"
	jobHandler "job-tracker/handler"
	"job-tracker/pkg/backend"
)

//go:embed templates/index.html
var templateFS embed.FS

// RunFrontend starts the dashboard. It holds no state of its own; every
// API call is relayed to the configured backend URL.
func RunFrontend(cfg *config.Config) {
	ctx, cancel := signal.NotifyContext(setupLogger(cfg), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Str("backend", cfg.Frontend.BackendURL).Msg("starting frontend")
	if cfg.App.Environment == constant.EnvironmentProduction.String() {
		gin.SetMode(gin.ReleaseMode)
	}

	client := backend.NewClient(cfg.Frontend.BackendURL)
	proxy := jobHandler.NewProxyHandler(client)

	r := gin.Default()
	r.Use(allowAllCORS())
	r.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/index.html")))
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"Title": "Kubernetes Networking Demo",
		})
	})
	proxy.Register(r)

	serve(ctx, r, cfg.Frontend.HttpPort)
}
