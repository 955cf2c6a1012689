// Package cli implements the folio command-line interface.
//
// The CLI serves the portfolio site, runs the justified layout engine over
// ad-hoc aspect ratios, and inspects the configured content source. It is
// built with cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - serve: load folio.toml and serve the site
//   - layout: lay out ratios from arguments, a JSON file or an image folder
//   - preview: a terminal preview that re-lays out as the window resizes
//   - projects: list projects, or import a file into MongoDB
//   - embed, mailto: the video and contact helpers used by the pages
//   - cache: manage the local layout cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. In verbose
// mode the CLI also registers log-backed observability hooks, so content
// queries, cache traffic and requests are traced.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/scaduxx/folio/pkg/buildinfo"
	"github.com/scaduxx/folio/pkg/cache"
	"github.com/scaduxx/folio/pkg/cms"
	"github.com/scaduxx/folio/pkg/config"
	"github.com/scaduxx/folio/pkg/pipeline"
)

const appName = "folio"

// Log levels re-exported so main does not import charmbracelet/log.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds the state shared by every command.
type CLI struct {
	Logger *log.Logger

	// ConfigPath is the folio.toml read by commands that need the site
	// configuration. Set by the persistent --config flag.
	ConfigPath string

	verbose bool
}

// New creates a CLI logging to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), ConfigPath: config.DefaultFile}
}

// SetLogLevel changes the logger level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand builds the command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Portfolio site and justified image layout engine",
		Long: `folio serves a visual-effects portfolio whose home page is a justified grid of
project thumbnails, and exposes the layout engine behind that grid.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				registerLogHooks(c.Logger)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}
	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&c.ConfigPath, "config", "c", c.ConfigPath, "path to folio.toml")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.projectsCommand())
	root.AddCommand(c.embedCommand())
	root.AddCommand(c.mailtoCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config and Source
// =============================================================================

// loadConfig reads the --config file. A missing default file is not an
// error: the built-in defaults and environment apply instead.
func (c *CLI) loadConfig() (config.Config, error) {
	path := c.ConfigPath
	if path == config.DefaultFile {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			c.Logger.Debug("no config file, using defaults", "path", path)
			path = ""
		}
	}
	return config.Load(path)
}

// openSource opens the configured content source with its query cache.
// The returned cleanup closes both.
func (c *CLI) openSource(ctx context.Context, cfg config.Config) (cms.Source, func(), error) {
	qc, err := newQueryCache(ctx, cfg.Cache)
	if err != nil {
		return nil, nil, err
	}
	src, err := cms.Open(ctx, cfg, qc, c.Logger)
	if err != nil {
		qc.Close()
		return nil, nil, err
	}
	return src, func() {
		src.Close()
		qc.Close()
	}, nil
}

// =============================================================================
// Cache Factories
// =============================================================================

// newQueryCache builds the cache named by the [cache] section. Every
// backend is instrumented so hooks see hits and misses.
func newQueryCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Driver {
	case config.CacheFile:
		dir := cfg.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return nil, fmt.Errorf("get cache dir: %w", err)
			}
			dir = filepath.Join(d, "queries")
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return cache.Instrument(fc), nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			URL:      cfg.Redis.URL,
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return cache.Instrument(rc), nil
	default:
		return cache.NewNullCache(), nil
	}
}

// newRunner creates a pipeline runner backed by the local layout cache.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	lc, err := newLayoutCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(lc, nil, c.Logger), nil
}

func newLayoutCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := layoutCacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return cache.Instrument(fc), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using the XDG convention (~/.cache/folio/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

func layoutCacheDir() (string, error) {
	dir, err := cacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "layouts"), nil
}
