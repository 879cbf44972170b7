// Command zamexportd runs the export bridge as an HTTP service. A GET to
// /get_ticket_data with a date range fetches the matching tickets from the
// configured Zammad instance and appends them to the export file.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/goatkit/zammad-export/internal/api"
	"github.com/goatkit/zammad-export/internal/config"
	"github.com/goatkit/zammad-export/internal/export"
	"github.com/goatkit/zammad-export/internal/logging"
	"github.com/goatkit/zammad-export/internal/services/scheduler"
	"github.com/goatkit/zammad-export/internal/zammad"
)

func main() {
	cfgPath := flag.String("config", "", "path to config file (default: ./zamexport.yaml if present)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer closeLog()

	// One client for the process lifetime; its pool is released once on
	// shutdown.
	client := zammad.NewClient(cfg.Zammad, zammad.WithLogger(logger))
	defer client.Close()

	processor := export.NewProcessor(client, export.WithLogger(logger))
	sink := buildSink(cfg.Export, logger)
	runner := export.NewRunner(processor, sink, export.WithRunnerLogger(logger))

	if cfg.Schedule.Enabled {
		sched := scheduler.NewService(runner, scheduler.WithLogger(logger))
		if err := sched.Start(cfg.Schedule.Spec); err != nil {
			logger.Fatalf("scheduler: %v", err)
		}
		defer sched.Stop()
	}

	if !strings.EqualFold(cfg.Log.Level, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(runner, cfg.Export.Path, api.WithLogger(logger))

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router.Engine(),
	}

	go func() {
		logger.Printf("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("shutdown: %v", err)
	}
}

func buildSink(cfg config.ExportConfig, logger *log.Logger) export.Sink {
	if cfg.Format == "xlsx" {
		return export.NewXLSXSink(cfg.Path, export.WithXLSXLogger(logger))
	}
	return export.NewCSVSink(cfg.Path, export.WithCSVLogger(logger))
}
