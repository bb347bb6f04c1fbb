package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HaomingX/KnowledgeCircuitVis/internal/config"
	"github.com/HaomingX/KnowledgeCircuitVis/internal/server"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/cache"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/catalog"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/metrics"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/pipeline"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/upload"
)

// serveCommand creates the serve command for running the viewer server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
		dataDir    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the circuit viewer server",
		Long: `Run the circuit viewer server.

The server exposes the interactive viewer page, a JSON API for models, cases,
element layouts, and uploads, plus /healthz and Prometheus /metrics endpoints.

Configuration is read from a TOML file (--config); the --addr and --data-dir
flags override file values. The cache backend ('file', 'redis', or 'none') is
selected in the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), configPath, addr, dataDir)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to TOML config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "directory containing circuit data (overrides config)")

	return cmd
}

// runServe loads configuration, wires the cache backend, and runs the server.
func (c *CLI) runServe(ctx context.Context, configPath, addr, dataDir string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if dataDir != "" {
		cfg.Server.DataDir = dataDir
	}

	cacheBackend, err := serverCache(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	metrics.Register()

	// Redis backends may be shared between deployments; prefix the keys.
	var keyer cache.Keyer
	if cfg.Cache.Backend == config.BackendRedis {
		keyer = cache.NewScopedKeyer(nil, appName+":")
	}

	runner := pipeline.NewRunner(cacheBackend, keyer, c.Logger)
	runner.TTL = cfg.Cache.TTL.Std()
	defer runner.Close()

	srv := server.New(server.Options{
		Addr:         cfg.Server.Addr,
		Catalog:      catalog.New(cfg.Server.DataDir),
		Uploads:      upload.NewMemoryStore(0),
		Runner:       runner,
		Logger:       c.Logger,
		LayoutWidth:  cfg.Layout.Width,
		LayoutHeight: cfg.Layout.Height,
	})

	c.Logger.Info("starting server",
		"addr", cfg.Server.Addr,
		"data_dir", cfg.Server.DataDir,
		"cache", cfg.Cache.Backend)

	return srv.Run(ctx)
}

// serverCache builds the cache backend named in the config.
func serverCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	case config.BackendFile:
		dir := cfg.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
