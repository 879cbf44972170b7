// Package api exposes the HTTP surface of the export bridge: the range
// trigger endpoint, health, and Prometheus metrics.
package api

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goatkit/zammad-export/internal/export"
)

// RangeRunner executes one range request and reports how many tickets were
// processed.
type RangeRunner interface {
	Run(ctx context.Context, dr export.DateRange) (int, error)
}

// Router holds the handlers' dependencies.
type Router struct {
	runner     RangeRunner
	exportPath string
	logger     *log.Logger
}

// RouterOption configures the router.
type RouterOption func(*Router)

// WithLogger sets a custom logger.
func WithLogger(l *log.Logger) RouterOption {
	return func(r *Router) { r.logger = l }
}

// NewRouter creates a router around a range runner. exportPath is echoed in
// the success payload so callers know where rows landed.
func NewRouter(runner RangeRunner, exportPath string, opts ...RouterOption) *Router {
	r := &Router{
		runner:     runner,
		exportPath: exportPath,
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Engine builds the gin engine with all routes registered.
func (rt *Router) Engine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/get_ticket_data", rt.handleGetTicketData)
	engine.GET("/api/v1/health", rt.handleHealth)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return engine
}

// handleHealth returns API health status.
func (rt *Router) handleHealth(c *gin.Context) {
	sendSuccess(c, gin.H{
		"status":    "healthy",
		"service":   "zammad-export",
		"timestamp": time.Now().UTC(),
	})
}
