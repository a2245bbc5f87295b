package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wiresketch/wiresketch/internal/config"
	"github.com/wiresketch/wiresketch/pkg/cache"
)

// cacheCommand groups the result cache subcommands. Only the file backend
// can be inspected or cleared from here; a Redis cache is managed with the
// server's own tools.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the result cache",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "info",
			Short: "Show the cache backend and the size of the file cache",
			Args:  cobra.NoArgs,
			RunE:  func(cmd *cobra.Command, _ []string) error { return c.runCacheInfo() },
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every entry from the file cache",
			Args:  cobra.NoArgs,
			RunE:  func(cmd *cobra.Command, _ []string) error { return c.runCacheClear() },
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the file cache directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				dir, err := c.fileCacheDir()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), dir)
				return err
			},
		},
	)
	return cmd
}

// openFileCache returns the configured file cache, or nil when the
// directory does not exist yet.
func (c *CLI) openFileCache() (*cache.FileCache, error) {
	dir, err := c.fileCacheDir()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}
	return cache.NewFileCache(dir)
}

func (c *CLI) runCacheInfo() error {
	cfg := c.Config.Cache
	c.ui.keyValue("backend", cfg.Backend)
	switch cfg.Backend {
	case config.BackendRedis:
		c.ui.keyValue("url", cfg.RedisURL)
		return nil
	case config.BackendNone:
		return nil
	}

	fc, err := c.openFileCache()
	if err != nil {
		return err
	}
	if fc == nil {
		c.ui.keyValue("entries", StyleNumber.Render("0"))
		return nil
	}
	entries, size, err := fc.Stats()
	if err != nil {
		return err
	}
	c.ui.keyValue("dir", fc.Dir())
	c.ui.keyValue("entries", StyleNumber.Render(fmt.Sprint(entries)))
	c.ui.keyValue("size", StyleNumber.Render(fmt.Sprintf("%.1f KiB", float64(size)/1024)))
	return nil
}

func (c *CLI) runCacheClear() error {
	if b := c.Config.Cache.Backend; b != config.BackendFile {
		c.ui.warning("Cache backend is %q; only the file cache can be cleared", b)
		return nil
	}
	fc, err := c.openFileCache()
	if err != nil {
		return err
	}
	if fc == nil {
		c.ui.info("Cache is empty")
		return nil
	}

	n, err := fc.Clear()
	if err != nil {
		return err
	}
	c.ui.success("Cleared %s", plural(n, "cached entry", "cached entries"))
	c.ui.detail("Directory: %s", fc.Dir())
	return nil
}
