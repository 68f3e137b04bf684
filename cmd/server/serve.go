package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/sierrasoftworks/humane-errors-go"
	"github.com/spechtlabs/go-otel-utils/otelzap"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"github.com/spechtlabs/ecsview/pkg/cache"
	"github.com/spechtlabs/ecsview/pkg/credentials"
	ecscache "github.com/spechtlabs/ecsview/pkg/ecs/cache"
	"github.com/spechtlabs/ecsview/pkg/ecs/client"
	"github.com/spechtlabs/ecsview/pkg/ecs/provider"
	"github.com/spechtlabs/ecsview/pkg/lnhttp"
	"github.com/spechtlabs/ecsview/pkg/service/api"
	"github.com/spechtlabs/ecsview/pkg/utils"
)

var serveCmd = &cobra.Command{
	Use:   "serve [--host|-H <string>] [--port|-p <int>] [--health-port <int>] [--cache-driver <memory|redis>] [--redis-address <string>] [--concurrency <int>] [--aws-endpoint <string>]",
	Short: "Run the ECS cluster view API",
	Long: `Start the HTTP API of the ECS cluster view.

This command:

- Connects to the configured cluster cache store (memory or redis)
- Loads the configured accounts and their credentials
- Serves the cached cluster list and live cluster descriptions
- Starts a local HTTP server for metrics and health checks

Configuration is provided via flags, the config file and environment variables (see --help).`,
	Example: `# Start the server with defaults from config and environment
ecsview-server serve

# Use a redis cache store and describe four batches in parallel
ecsview-server serve --cache-driver redis --redis-address redis:6379 --concurrency 4

# Talk to localstack instead of AWS
ecsview-server serve --aws-endpoint http://localhost:4566`,
	Args:      cobra.ExactArgs(0),
	ValidArgs: []string{},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runServe(cmd.Context()); err != nil {
			otelzap.L().WithError(err).Error("Exiting")
			return err
		}

		otelzap.L().Info("Exiting")
		return nil
	},
}

func logConfigFile() {
	configFileName := viper.GetViper().ConfigFileUsed()
	if configFileName == "" {
		otelzap.L().Debug("No config file used")
		return
	}

	if viper.GetBool("debug") {
		if file, err := os.ReadFile(configFileName); err == nil && len(file) > 0 {
			otelzap.L().Sugar().With("config_file", configFileName, "config", string(file)).Debug("Config file used")
			return
		}
	}

	otelzap.L().Sugar().With("config_file", configFileName).Debug("Config file used")
}

func cacheConfig() cache.Config {
	return cache.Config{
		Driver: cache.Driver(viper.GetString("cache.driver")),
		Prefix: viper.GetString("cache.prefix"),
		TTL:    viper.GetDuration("cache.ttl"),
		Redis: cache.RedisOptions{
			Address:  viper.GetString("cache.redis.address"),
			Password: viper.GetString("cache.redis.password"),
			DB:       viper.GetInt("cache.redis.db"),
		},
	}
}

func newClusterProvider(store cache.Store) (*provider.ClusterProvider, humane.Error) {
	repo, err := credentials.NewRepositoryFromViper()
	if err != nil {
		return nil, err
	}

	factory := client.NewAWSFactory(
		client.WithEndpoint(viper.GetString("aws.endpoint")),
		client.WithRetryMaxAttempts(viper.GetInt("aws.retryMaxAttempts")),
		client.WithClientTTL(viper.GetDuration("aws.clientTTL")),
	)

	return provider.NewClusterProvider(
		ecscache.NewClusterCacheClient(store),
		repo,
		factory,
		provider.WithConcurrency(viper.GetInt("ecs.describe.concurrency")),
	), nil
}

func newAPIServer(viewer api.ClusterViewer, prom *ginprometheus.Prometheus) (*lnhttp.Server, *api.ViewServer, humane.Error) {
	viewServer := api.NewViewServer(api.WithPrometheusMiddleware(prom))
	if err := viewServer.LoadEcsRoutes(viewer); err != nil {
		return nil, nil, err
	}

	srv := lnhttp.NewServer(&http.Server{
		Addr:              net.JoinHostPort(viper.GetString("server.host"), strconv.Itoa(viper.GetInt("server.port"))),
		ReadTimeout:       viper.GetDuration("server.readTimeout"),
		ReadHeaderTimeout: viper.GetDuration("server.readHeaderTimeout"),
		WriteTimeout:      viper.GetDuration("server.writeTimeout"),
		IdleTimeout:       viper.GetDuration("server.idleTimeout"),
	}, nil)

	return srv, viewServer, nil
}

func runServe(parent context.Context) humane.Error {
	logConfigFile()

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancelFn := context.WithCancelCause(parent)
	defer cancelFn(nil)
	utils.InterruptHandler(ctx, cancelFn)

	store, err := cache.New(ctx, cacheConfig())
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			otelzap.L().WithError(err).Warn("Failed to close cache store")
		}
	}()

	clusterProvider, err := newClusterProvider(store)
	if err != nil {
		return err
	}

	// Request metrics land in the default registry served by the health server
	sharedPrometheus := ginprometheus.NewPrometheus("ecsview")

	apiSrv, viewServer, err := newAPIServer(clusterProvider, sharedPrometheus)
	if err != nil {
		return err
	}

	healthSrv := newHealthServer(viper.GetInt("health.port"))

	go func() {
		otelzap.L().InfoContext(ctx, "Starting API server", zap.String("addr", apiSrv.Addr))
		if err := apiSrv.Serve(ctx, viewServer.Engine()); err != nil {
			cancelFn(fmt.Errorf("api server failed: %w", err))
		}
	}()

	go func() {
		otelzap.L().InfoContext(ctx, "Starting local metrics server", zap.String("addr", healthSrv.Addr))
		if err := healthSrv.Serve(ctx, newHealthRouter(store)); err != nil {
			cancelFn(fmt.Errorf("local metrics server failed: %w", err))
		}
	}()

	<-ctx.Done()
	// No more logging to ctx from here onwards

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	otelzap.L().Info("Shutting down servers...")

	if err := healthSrv.Shutdown(shutdownCtx); err != nil {
		otelzap.L().WithError(err).Error("Failed to shutdown local metrics server gracefully")
	}

	if err := apiSrv.Shutdown(shutdownCtx); err != nil {
		otelzap.L().WithError(err).Error("Failed to shutdown API server gracefully")
		return humane.Wrap(err, "failed to shutdown API server", "in-flight describe requests did not finish within 30s")
	}

	otelzap.L().Info("Servers shut down successfully")

	cause := context.Cause(ctx)
	if cause != nil && !errors.Is(cause, context.Canceled) && !errors.Is(cause, utils.ErrInterrupted) {
		return humane.Wrap(cause, "server terminated due to error", "check the logs above for the failing server")
	}

	return nil
}
