package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/facadeplan/pkg/config"
	"github.com/matzehuels/facadeplan/pkg/facade"
	"github.com/matzehuels/facadeplan/pkg/pipeline"
)

// planFlags holds the command-line overrides for the plan command.
type planFlags struct {
	output    string
	formats   string
	noCache   bool
	refresh   bool
	labels    bool
	rows      bool
	seed      uint64
	scale     float64
	height    float64
	typ       string
	lower     string
	upper     string
	boundary  float64
	spandrel  float64
	footprint string
	width     float64
	depth     float64
}

// planCommand creates the plan command, the main entry point from a
// building file (or flags) to rendered elevations.
func (c *CLI) planCommand() *cobra.Command {
	var flags planFlags

	cmd := &cobra.Command{
		Use:   "plan [building.toml]",
		Short: "Plan and render the facades of a building",
		Long: `Plan and render the facades of a building.

The building is read from a TOML file (see 'facadeplan init') or built from
the defaults. Flags override individual values. Each requested format is
written next to the output base path:

  facadeplan plan building.toml -f svg,json
  facadeplan plan --type complex --height 30 --boundary 12 -o tower

Results are cached locally for faster subsequent runs.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeBuildingFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			opts, err := loadPlanOptions(cmd, input, flags)
			if err != nil {
				return userError(err)
			}
			return c.runPlan(cmd.Context(), opts, outputBase(flags.output, input), flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output base path (default: <input> or ./facade)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), json, dot, tree, png, pdf (comma-separated)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "replan and overwrite cached results")
	cmd.Flags().BoolVar(&flags.labels, "labels", false, "label faces in SVG output")
	cmd.Flags().BoolVar(&flags.rows, "rows", false, "collapse band rows in tree diagrams")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "random seed (default: from file, or 1)")
	cmd.Flags().Float64Var(&flags.scale, "scale", 0, "SVG units per metre")

	cmd.Flags().Float64Var(&flags.height, "height", 0, "building height")
	cmd.Flags().StringVarP(&flags.typ, "type", "t", "", "building type: "+typeList())
	cmd.Flags().StringVar(&flags.lower, "lower", "", "lower floor type of a complex building")
	cmd.Flags().StringVar(&flags.upper, "upper", "", "upper floor type of a complex building")
	cmd.Flags().Float64Var(&flags.boundary, "boundary", 0, "height at which a complex building switches type")
	cmd.Flags().Float64Var(&flags.spandrel, "spandrel", 0, "spandrel height of office floors")

	cmd.Flags().StringVar(&flags.footprint, "footprint", "", `footprint outline as "x,y x,y x,y ..."`)
	cmd.Flags().Float64Var(&flags.width, "width", 0, "rectangular footprint width (with --depth)")
	cmd.Flags().Float64Var(&flags.depth, "depth", 0, "rectangular footprint depth (with --width)")
	cmd.MarkFlagsMutuallyExclusive("footprint", "width")
	cmd.MarkFlagsRequiredTogether("width", "depth")

	_ = cmd.RegisterFlagCompletionFunc("type", completeBuildingTypes)
	_ = cmd.RegisterFlagCompletionFunc("lower", completeBuildingTypes)
	_ = cmd.RegisterFlagCompletionFunc("upper", completeBuildingTypes)
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

// loadPlanOptions reads the building file and applies every flag the user set.
func loadPlanOptions(cmd *cobra.Command, input string, flags planFlags) (pipeline.Options, error) {
	f := config.Default()
	if input != "" {
		loaded, err := config.Load(input)
		if err != nil {
			return pipeline.Options{}, err
		}
		f = loaded
	}

	changed := cmd.Flags().Changed
	b := &f.Building
	if changed("height") {
		b.Height = flags.height
	}
	for _, tf := range []struct {
		name, value string
		dst         *facade.BuildingType
	}{
		{"type", flags.typ, &b.Type},
		{"lower", flags.lower, &b.LowerType},
		{"upper", flags.upper, &b.UpperType},
	} {
		if !changed(tf.name) {
			continue
		}
		t, err := facade.ParseBuildingType(tf.value)
		if err != nil {
			return pipeline.Options{}, err
		}
		*tf.dst = t
	}
	if changed("boundary") {
		b.BoundaryHeight = flags.boundary
	}
	if changed("spandrel") {
		b.SpandrelHeight = flags.spandrel
	}

	opts, err := pipeline.FromFile(f)
	if err != nil {
		return pipeline.Options{}, err
	}
	switch {
	case changed("footprint"):
		if opts.Footprint, err = parseFootprint(flags.footprint); err != nil {
			return pipeline.Options{}, err
		}
	case changed("width"):
		opts.Footprint = rectFootprint(flags.width, flags.depth)
	}
	if changed("format") {
		opts.Formats = parseFormats(flags.formats)
	}
	if changed("seed") {
		opts.Seed = flags.seed
	}
	if changed("scale") {
		opts.Scale = flags.scale
	}
	opts.Labels = flags.labels
	opts.Rows = flags.rows
	opts.Refresh = flags.refresh

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

// runPlan executes the pipeline and writes one file per format.
func (c *CLI) runPlan(ctx context.Context, opts pipeline.Options, base string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Planning %s building...", opts.Building.Type))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Planning failed")
		return userError(err)
	}
	if ctx.Err() != nil {
		spinner.Stop()
		return ctx.Err()
	}

	spinner.SetMessage(fmt.Sprintf("Writing %d files...", len(opts.Formats)))
	paths, err := writeArtifacts(result.Artifacts, opts.Formats, base)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Planned %s", result.ID))

	printSuccess("Facades planned")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.Faces, result.Stats.Panels, result.CacheInfo.RenderHit)
	return nil
}

// writeArtifacts writes each format to base.<ext> and returns the paths in
// format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, base string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			return paths, fmt.Errorf("no %s output was rendered", format)
		}
		path := base + "." + pipeline.Extension(format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write output %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
