package httpserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"chatterbot-server/internal/config"
	middleware "chatterbot-server/internal/interfaces/httpserver/middlewares"
	"chatterbot-server/internal/interfaces/httpserver/routes/web"
	"chatterbot-server/internal/interfaces/httpserver/webui"
)

type HTTPServer struct {
	engine   *gin.Engine
	webRoute *web.WebRoute
	config   *config.Config
}

func NewHTTPServer(
	webRoute *web.WebRoute,
	cfg *config.Config,
	logger zerolog.Logger,
) *HTTPServer {
	if config.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	server := HTTPServer{
		gin.New(),
		webRoute,
		cfg,
	}
	server.engine.Use(middleware.RequestID())
	server.engine.Use(middleware.TracingMiddleware(cfg.ServiceName))
	server.engine.Use(middleware.LoggingMiddleware(logger))
	server.engine.Use(middleware.CORSMiddleware())
	server.engine.Use(middleware.MetricsMiddleware())
	// Transcript state changes on every turn; never let browsers cache pages.
	server.engine.Use(middleware.NoCache())

	server.engine.SetHTMLTemplate(webui.Templates())
	server.engine.StaticFS("/static", webui.StaticFS())

	server.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	server.engine.GET("/readyz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	return &server
}

func (httpServer *HTTPServer) Run() error {
	root := httpServer.engine.Group("/")
	httpServer.webRoute.RegisterRouter(root)

	if err := httpServer.engine.Run(fmt.Sprintf(":%d", httpServer.config.HTTPPort)); err != nil {
		return err
	}
	return nil
}
