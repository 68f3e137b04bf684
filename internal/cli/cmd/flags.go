package cmd

import (
	"time"

	humane "github.com/sierrasoftworks/humane-errors-go"
	"github.com/spechtlabs/ecsview/internal/cli/pretty_print"
	"github.com/spechtlabs/ecsview/pkg/cache"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configFileName string

// bindFlag binds a persistent flag of cmd to a viper key.
func bindFlag(cmd *cobra.Command, key, flag string) {
	if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(humane.Wrap(err, "fatal binding flag", "check that the flag name matches the viper key")) //nolint:nopanic // flag binding errors are programming errors
	}
}

func addCommonFlags(cmd *cobra.Command) {
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)

	cmd.PersistentFlags().StringVarP(&configFileName, "config", "c", "", "Name of the config file")
	_ = cmd.RegisterFlagCompletionFunc("config", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "json"}, cobra.ShellCompDirectiveFilterFileExt
	})

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	viper.SetDefault("debug", false)
	bindFlag(cmd, "debug", "debug")

	cmd.PersistentFlags().StringP("host", "H", "localhost", "Host the API server listens on or the CLI connects to")
	viper.SetDefault("server.host", "localhost")
	bindFlag(cmd, "server.host", "host")

	cmd.PersistentFlags().IntP("port", "p", 8080, "Port of the HTTP API")
	viper.SetDefault("server.port", 8080)
	bindFlag(cmd, "server.port", "port")
}

func addServerFlags(cmd *cobra.Command) {
	addCommonFlags(cmd)

	viper.SetDefault("server.readTimeout", 10*time.Second)
	viper.SetDefault("server.readHeaderTimeout", 5*time.Second)
	viper.SetDefault("server.writeTimeout", 60*time.Second)
	viper.SetDefault("server.idleTimeout", 120*time.Second)

	cmd.PersistentFlags().Int("health-port", 8081, "Port of the health and metrics server")
	viper.SetDefault("health.port", 8081)
	bindFlag(cmd, "health.port", "health-port")

	cmd.PersistentFlags().String("cache-driver", string(cache.MemoryDriver), "Cache store backend (memory or redis)")
	viper.SetDefault("cache.driver", string(cache.MemoryDriver))
	bindFlag(cmd, "cache.driver", "cache-driver")
	_ = cmd.RegisterFlagCompletionFunc("cache-driver", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{string(cache.MemoryDriver), string(cache.RedisDriver)}, cobra.ShellCompDirectiveNoFileComp
	})

	viper.SetDefault("cache.prefix", cache.DefaultPrefix)
	viper.SetDefault("cache.ttl", time.Duration(0))

	cmd.PersistentFlags().String("redis-address", "localhost:6379", "Address of the redis cache store")
	viper.SetDefault("cache.redis.address", "localhost:6379")
	bindFlag(cmd, "cache.redis.address", "redis-address")
	viper.SetDefault("cache.redis.password", "")
	viper.SetDefault("cache.redis.db", 0)

	cmd.PersistentFlags().Int("concurrency", 1, "Number of describe batches sent in parallel")
	viper.SetDefault("ecs.describe.concurrency", 1)
	bindFlag(cmd, "ecs.describe.concurrency", "concurrency")

	cmd.PersistentFlags().String("aws-endpoint", "", "Override the ECS endpoint, e.g. for localstack")
	viper.SetDefault("aws.endpoint", "")
	bindFlag(cmd, "aws.endpoint", "aws-endpoint")

	viper.SetDefault("aws.retryMaxAttempts", 0)
	viper.SetDefault("aws.clientTTL", 15*time.Minute)
}

func addClientFlags(cmd *cobra.Command) {
	addCommonFlags(cmd)

	cmd.PersistentFlags().StringP("theme", "t", string(pretty_print.TokyoNightStyle), "theme to use for the CLI")
	viper.SetDefault("output.theme", string(pretty_print.TokyoNightStyle))
	bindFlag(cmd, "output.theme", "theme")
	_ = cmd.RegisterFlagCompletionFunc("theme", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return pretty_print.AllThemeNames(), cobra.ShellCompDirectiveNoFileComp
	})

	cmd.PersistentFlags().StringP("output", "o", string(pretty_print.TableFormat), "Output format (table, json or yaml)")
	viper.SetDefault("output.format", string(pretty_print.TableFormat))
	bindFlag(cmd, "output.format", "output")
	_ = cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return pretty_print.AllOutputFormats(), cobra.ShellCompDirectiveNoFileComp
	})

	cmd.PersistentFlags().BoolP("long", "l", false, "Show long output (where available)")
	viper.SetDefault("output.long", false)
	bindFlag(cmd, "output.long", "long")

	cmd.PersistentFlags().BoolP("quiet", "q", false, "Show no progress output")
	viper.SetDefault("output.quiet", false)
	bindFlag(cmd, "output.quiet", "quiet")

	viper.SetDefault("api.maxAttempts", 3)
	viper.SetDefault("api.retryDelay", 500*time.Millisecond)
	viper.SetDefault("api.timeout", 60*time.Second)
}
