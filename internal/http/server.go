package http

import (
	"context"
	"net/http"

	"github.com/jmehdipour/rc-admin/internal/config"
	"github.com/jmehdipour/rc-admin/internal/logger"
	"github.com/jmehdipour/rc-admin/internal/metrics"
	"github.com/jmehdipour/rc-admin/internal/util"
	"github.com/jmehdipour/rc-admin/web"
	"github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	gommonLog "github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Server struct {
	e   *echo.Echo
	log *zap.Logger
}

func NewServer(cfg config.Config, rc Upstream, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	// echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(echoLevel(cfg.Log.Level))
	e.Use(
		echoMid.Recover(),
		echoMid.RequestIDWithConfig(echoMid.RequestIDConfig{Generator: util.NewULID}),
		requestLogger(log),
	)

	reg := prometheus.NewRegistry()
	metrics.MustRegister(reg)

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// health
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	// routes
	e.GET("/customers", listCustomersHandler(rc, log))
	e.DELETE("/customers/:id", deleteCustomerHandler(rc, log))

	// admin console
	if cfg.HTTP.StaticDir != "" {
		e.Static("/", cfg.HTTP.StaticDir)
	} else {
		e.StaticFS("/", echo.MustSubFS(web.Assets, web.Root))
	}

	return &Server{e: e, log: log}
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler { return s.e }

func (s *Server) Start(addr string) error {
	s.log.Info("http: listening", zap.String("addr", addr))
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }

func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return echoMid.RequestLoggerWithConfig(echoMid.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echoMid.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			lvl := zapcore.InfoLevel
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
				lvl = zapcore.ErrorLevel
			}
			log.Log(lvl, "request", fields...)
			return nil
		},
	})
}

func echoLevel(level string) gommonLog.Lvl {
	switch logger.ParseLevel(level) {
	case zapcore.DebugLevel:
		return gommonLog.DEBUG
	case zapcore.WarnLevel:
		return gommonLog.WARN
	case zapcore.ErrorLevel:
		return gommonLog.ERROR
	default:
		return gommonLog.INFO
	}
}
