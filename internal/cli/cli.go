// Package cli implements the gfalook command-line interface.
//
// This package provides commands for rendering variation graphs as 1D
// visualizations, inspecting graph statistics, clustering paths by
// similarity, and managing the result cache. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Generate SVG or PNG visualizations from a GFA file
//   - cluster: Group paths by similarity and report cluster membership
//   - inspect: Print graph statistics without rendering
//   - cache: Manage the result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context to allow structured progress
// tracking.
//
// # Example
//
//	import "github.com/pangenome/gfalook/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/pangenome/gfalook/pkg/cache"
	"github.com/pangenome/gfalook/pkg/viz"
)

// appName is the application name used for directories and display.
const appName = "gfalook"

// newRunner creates a render pipeline runner for CLI use. With noCache
// set (or when no cache directory can be resolved) results are
// recomputed on every invocation.
func newRunner(noCache bool, logger *log.Logger) (*viz.Runner, error) {
	c, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return viz.NewRunner(c, logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/gfalook/).
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
