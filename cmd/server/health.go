package main

import (
	"fmt"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spechtlabs/go-otel-utils/otelzap"

	"github.com/spechtlabs/ecsview/pkg/cache"
	"github.com/spechtlabs/ecsview/pkg/lnhttp"
)

func newHealthServer(port int) *lnhttp.Server {
	return lnhttp.NewServer(&http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}, nil)
}

// newHealthRouter serves /metrics and a /ready probe that pings the cache store.
func newHealthRouter(store cache.Store) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginzap.GinzapWithConfig(otelzap.L(), &ginzap.Config{
		UTC:        true,
		TimeFormat: time.RFC3339,
		SkipPaths:  []string{"/ready", "/metrics"},
	}))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/ready", func(c *gin.Context) {
		if store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": "cache store not initialized"})
			return
		}

		if err := store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ready", "reason": "cache store is reachable"})
	})

	return router
}
