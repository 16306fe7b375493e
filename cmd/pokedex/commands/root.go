package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Sternrassler/pokedex/internal/config"
	"github.com/Sternrassler/pokedex/pkg/client"
	"github.com/Sternrassler/pokedex/pkg/logging"
	"github.com/Sternrassler/pokedex/pkg/pagination"
)

// annotationNeedsApp marks commands that talk to PokeAPI. Others (help,
// completion) run without loading the configuration.
const annotationNeedsApp = "pokedex/needs-app"

func needsApp(cmd *cobra.Command) bool {
	return cmd.Annotations[annotationNeedsApp] == "true"
}

func appCommand(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotationNeedsApp] = "true"
	return cmd
}

// app is the dependency graph shared by subcommands.
type app struct {
	cfg    *config.Config
	client *client.Client
	loader *pagination.Loader
	redis  *redis.Client
	logger zerolog.Logger
}

// Execute runs the CLI with ctx as the root context.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	v := config.New()
	a := &app{}

	root := &cobra.Command{
		Use:           "pokedex",
		Short:         "Browse Pokémon from PokeAPI",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !needsApp(cmd) {
				return nil
			}
			return a.init(cmd.Context(), cmd, v)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	flags := root.PersistentFlags()
	flags.String("base-url", v.GetString(config.KeyBaseURL), "PokeAPI root URL")
	flags.String("user-agent", v.GetString(config.KeyUserAgent), "User-Agent sent to PokeAPI")
	flags.String("redis-addr", "", "Redis address for the response cache (disabled when empty)")
	flags.String("log-level", v.GetString(config.KeyLogLevel), "log level: debug, info, warn, error")
	flags.Bool("log-pretty", false, "human-readable logs instead of JSON")
	flags.Float64("rate-limit", v.GetFloat64(config.KeyRateLimit), "max PokeAPI requests per second")
	flags.Int("burst", v.GetInt(config.KeyBurst), "max PokeAPI requests started at once")
	flags.Duration("timeout", v.GetDuration(config.KeyTimeout), "per-request timeout")

	bind(v, flags.Lookup("base-url"), config.KeyBaseURL)
	bind(v, flags.Lookup("user-agent"), config.KeyUserAgent)
	bind(v, flags.Lookup("redis-addr"), config.KeyRedisAddr)
	bind(v, flags.Lookup("log-level"), config.KeyLogLevel)
	bind(v, flags.Lookup("log-pretty"), config.KeyLogPretty)
	bind(v, flags.Lookup("rate-limit"), config.KeyRateLimit)
	bind(v, flags.Lookup("burst"), config.KeyBurst)
	bind(v, flags.Lookup("timeout"), config.KeyTimeout)

	serve := serveCmd(a)
	bind(v, serve.Flags().Lookup("addr"), config.KeyAddr)

	root.AddCommand(appCommand(listCmd(a)), appCommand(showCmd(a)), appCommand(serve))
	return root
}

func (a *app) init(ctx context.Context, cmd *cobra.Command, v *viper.Viper) error {
	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	logging.Setup(cfg.Logging(cmd.ErrOrStderr()))
	a.logger = logging.NewLogger("cli")

	if cfg.RedisAddr != "" {
		a.redis = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := a.redis.Ping(pingCtx).Err(); err != nil {
			a.redis.Close()
			a.redis = nil
			return fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		a.logger.Info().Str("addr", cfg.RedisAddr).Msg("Response cache enabled")
	}

	a.client, err = client.New(cfg.Client(a.redis))
	if err != nil {
		return fmt.Errorf("create PokeAPI client: %w", err)
	}
	a.loader = pagination.NewLoader(a.client, pagination.DefaultLoaderConfig())

	return nil
}

func (a *app) close() error {
	if a.client != nil {
		a.client.Close()
	}
	if a.redis != nil {
		return a.redis.Close()
	}
	return nil
}
