// Package cli implements the facadeplan command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/facadeplan/pkg/buildinfo"
	"github.com/matzehuels/facadeplan/pkg/cache"
	"github.com/matzehuels/facadeplan/pkg/errors"
	"github.com/matzehuels/facadeplan/pkg/geom"
	"github.com/matzehuels/facadeplan/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "facadeplan"

	// defaultConfigFile is the building file written by init.
	defaultConfigFile = "building.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Facadeplan lays out building facades from panels",
		Long:         `Facadeplan divides every wall of a building footprint into fixed-width panel slots and stacks floor bands on them, producing an elevation for each face.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.planCommand())
	root.AddCommand(c.solveCommand())
	root.AddCommand(c.divideCommand())
	root.AddCommand(c.initCommand())
	root.AddCommand(c.typesCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Cache keys are scoped by
// release so entries from another version are never read.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	keyer := newKeyer()
	return pipeline.NewRunner(cache, keyer, c.Logger), nil
}

func newKeyer() cache.Keyer {
	return cache.NewScopedKeyer(nil, buildinfo.Version+":")
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

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/facadeplan/).
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

// =============================================================================
// Flag Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	formats := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			formats = append(formats, p)
		}
	}
	return formats
}

// parseFootprint parses outline points written as "x,y x,y x,y".
func parseFootprint(s string) (geom.Polygon, error) {
	fields := strings.Fields(s)
	poly := make(geom.Polygon, 0, len(fields))
	for i, f := range fields {
		xs, ys, ok := strings.Cut(f, ",")
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidFootprint, "point %d %q is not x,y", i, f)
		}
		x, errX := strconv.ParseFloat(xs, 64)
		y, errY := strconv.ParseFloat(ys, 64)
		if errX != nil || errY != nil {
			return nil, errors.New(errors.ErrCodeInvalidFootprint, "point %d %q is not numeric", i, f)
		}
		poly = append(poly, geom.Vec2{X: x, Y: y})
	}
	if err := poly.Validate(); err != nil {
		return nil, err
	}
	return poly, nil
}

// rectFootprint returns a width by depth rectangle in counter-clockwise order.
func rectFootprint(width, depth float64) geom.Polygon {
	return geom.Polygon{{X: 0, Y: 0}, {X: width, Y: 0}, {X: width, Y: depth}, {X: 0, Y: depth}}
}

// outputBase picks the base path for written artifacts.
func outputBase(output, input string) string {
	if output != "" {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	if input != "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	return "facade"
}

// userError formats err for display, adding the error code when one is set.
func userError(err error) error {
	if code := errors.GetCode(err); code != "" {
		return fmt.Errorf("%s [%s]", errors.UserMessage(err), code)
	}
	return err
}
