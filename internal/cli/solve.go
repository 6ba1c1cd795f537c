package cli

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/facadeplan/pkg/config"
	"github.com/matzehuels/facadeplan/pkg/facade"
)

// solveCommand prints the storey heights the planner would use.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		height   float64
		typ      string
		boundary float64
	)

	cmd := &cobra.Command{
		Use:   "solve [building.toml]",
		Short: "Show the solved floor heights of a building",
		Long: `Show the solved floor heights of a building.

The floor height is searched between 2.75 and 3.25 in steps of 0.05 so that
the building height divides into the most nearly whole number of floors.
Complex buildings are solved separately below and above the boundary.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeBuildingFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := config.Default()
			if len(args) == 1 {
				loaded, err := config.Load(args[0])
				if err != nil {
					return userError(err)
				}
				f = loaded
			}
			if cmd.Flags().Changed("height") {
				f.Building.Height = height
			}
			if cmd.Flags().Changed("type") {
				t, err := facade.ParseBuildingType(typ)
				if err != nil {
					return userError(err)
				}
				f.Building.Type = t
			}
			if cmd.Flags().Changed("boundary") {
				f.Building.BoundaryHeight = boundary
			}
			out, err := heightsTable(f.Building)
			if err != nil {
				return userError(err)
			}
			fmt.Println(out)
			return nil
		},
	}

	cmd.Flags().Float64Var(&height, "height", 0, "building height")
	cmd.Flags().StringVarP(&typ, "type", "t", "", "building type: "+typeList())
	cmd.Flags().Float64Var(&boundary, "boundary", 0, "height at which a complex building switches type")
	_ = cmd.RegisterFlagCompletionFunc("type", completeBuildingTypes)

	return cmd
}

// heightsTable solves cfg and renders the result as a table.
func heightsTable(cfg facade.BuildingConfig) (string, error) {
	cfg = cfg.WithDefaults().Clamped()
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	h := facade.SolveHeights(cfg)

	rows := [][]string{
		{"height", fmtMetres(cfg.Height), ""},
		{"floor", fmtMetres(h.Floor), fmt.Sprintf("%.2f floors", cfg.Height/h.Floor)},
	}
	if cfg.IsComplex() {
		lower := math.Min(cfg.BoundaryHeight, cfg.Height)
		rows = append(rows,
			[]string{"lower", fmtMetres(h.Lower), fmt.Sprintf("%s to %s", cfg.LowerType, fmtMetres(lower))},
			[]string{"upper", fmtMetres(h.Upper), fmt.Sprintf("%s above %s", cfg.UpperType, fmtMetres(lower+facade.DepressionWallHeight))},
		)
	}
	rows = append(rows, []string{"entrance", fmtMetres(facade.EntranceHeight(cfg, h)), "ground band"})

	return StyleTitle.Render(cfg.Type.String()+" building") + "\n" +
		renderTable([]string{"", "metres", ""}, rows), nil
}

// divideCommand prints the panel slots of one face.
func (c *CLI) divideCommand() *cobra.Command {
	var (
		width        float64
		leftConcave  bool
		rightConcave bool
		seed         uint64
	)

	cmd := &cobra.Command{
		Use:   "divide",
		Short: "Show how a face width divides into panel slots",
		Long: `Show how a face width divides into panel slots.

Panels are 2.5 wide. A concave corner gives up 2.0 of the usable width on
its side. The remainder is spread evenly over the slots.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := slotsTable(width, !leftConcave, !rightConcave, seed)
			if err != nil {
				return userError(err)
			}
			fmt.Println(out)
			return nil
		},
	}

	cmd.Flags().Float64VarP(&width, "width", "w", 10, "face width")
	cmd.Flags().BoolVar(&leftConcave, "left-concave", false, "left corner is concave")
	cmd.Flags().BoolVar(&rightConcave, "right-concave", false, "right corner is concave")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed for the slot order")

	return cmd
}

// slotsTable divides a face and renders the slots as a table.
func slotsTable(width float64, leftConvex, rightConvex bool, seed uint64) (string, error) {
	if width <= 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		return "", fmt.Errorf("width must be a positive number (got %g)", width)
	}
	sizes := facade.DefaultSizes()
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	s := facade.DivideFacade(width, leftConvex, rightConvex, sizes, rng)

	offset := s.Offset()
	rows := make([][]string, 0, len(s.Sizes))
	x := 0.0
	for i, size := range s.Sizes {
		w := sizes[size] + offset
		rows = append(rows, []string{fmt.Sprint(i), fmtMetres(x), fmtMetres(w)})
		x += w
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", StyleTitle.Render(fmt.Sprintf("%d slots", len(s.Sizes))),
		StyleDim.Render(fmt.Sprintf("remainder %s, offset %s per slot", fmtMetres(s.Remainder), fmtMetres(offset))))
	if len(rows) > 0 {
		b.WriteString(renderTable([]string{"slot", "x", "width"}, rows))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func fmtMetres(v float64) string {
	return fmt.Sprintf("%.3f", v)
}
