package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"

	"recruit-go/internal/api/handler"
	"recruit-go/internal/api/router"
	"recruit-go/internal/config"
	applogger "recruit-go/internal/logger"
	"recruit-go/internal/service"
	"recruit-go/internal/storage"
)

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "internal/config/config.yaml", "Path to config file")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	initLogger(&cfg.Logger)
	glog.Info("configuration loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		glog.Fatalf("failed to initialize storage: %v", err)
	}
	defer store.Close()
	glog.Info("storage initialized")

	applications := service.NewApplicationService(store.MySQL)
	uploads := service.NewUploadService(store.MySQL, store.MinIO, &cfg.Upload)
	jobs := service.NewJobService(store.MySQL, store.Redis)
	candidates := service.NewCandidateService(store.MySQL)
	clients := service.NewClientService(store.MySQL)
	vendors := service.NewVendorService(store.MySQL)

	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	)
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		requestID := string(ctx.GetHeader("X-Request-ID"))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Header("X-Request-ID", requestID)

		start := time.Now()
		ctx.Next(c)
		glog.CtxInfof(c, "%s %s -> %d (%s) request_id=%s",
			string(ctx.Method()), string(ctx.Path()),
			ctx.Response.StatusCode(), time.Since(start), requestID)
	})

	router.RegisterRoutes(h, &cfg.Auth, router.Handlers{
		Applications: handler.NewApplicationHandler(applications),
		Resumes:      handler.NewResumeHandler(uploads),
		Jobs:         handler.NewJobHandler(jobs),
		Candidates:   handler.NewCandidateHandler(candidates),
		Clients:      handler.NewClientHandler(clients),
		Vendors:      handler.NewVendorHandler(vendors),
	})
	glog.Info("routes registered")

	go func() {
		glog.Infof("HTTP server listening on %s", cfg.Server.Address)
		if err := h.Run(); err != nil {
			glog.Fatalf("HTTP server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	glog.Info("shutdown signal received")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		glog.Errorf("server shutdown failed: %v", err)
	}
	glog.Info("shutdown complete")
}

// initLogger wires zerolog as the backend for both the application logger
// and Hertz's hlog, writing to the console and optionally a log file.
func initLogger(cfg *config.LoggerConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}
	zerolog.TimeFieldFormat = timeFormat

	writers := []io.Writer{
		zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "15:04:05",
		},
	}
	if cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			log.Fatalf("failed to create log directory: %v", err)
		}
		fileWriter, err := os.OpenFile(cfg.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("failed to open log file %s: %v", cfg.FilePath, err)
		}
		writers = append(writers, fileWriter)
	}

	lctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Timestamp()
	if cfg.ReportCaller {
		lctx = lctx.Caller()
	}
	logger := lctx.Logger()

	applogger.Logger = logger
	zlog.Logger = logger

	glog.SetLogger(hertzadapter.From(logger))
	switch level {
	case zerolog.DebugLevel:
		glog.SetLevel(glog.LevelDebug)
	case zerolog.WarnLevel:
		glog.SetLevel(glog.LevelWarn)
	case zerolog.ErrorLevel:
		glog.SetLevel(glog.LevelError)
	default:
		glog.SetLevel(glog.LevelInfo)
	}
}
