package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/facadeplan/pkg/facade"
)

// typesCommand lists the building types and the panels each one uses.
func (c *CLI) typesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List building types and their floor patterns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(typesTable())
			return nil
		},
	}
}

// typeList joins the canonical building type names for flag help.
func typeList() string {
	return strings.Join(facade.BuildingTypeNames(), ", ")
}

// typesTable renders one row per building type.
func typesTable() string {
	var rows [][]string
	for _, name := range facade.BuildingTypeNames() {
		t, err := facade.ParseBuildingType(name)
		if err != nil {
			continue
		}
		rows = append(rows, []string{name, describeFloors(t), yesNo(t.CanBeFloorType())})
	}
	return renderTable([]string{"type", "floors", "complex part"}, rows)
}

// describeFloors summarises the repeating floor bands of t and the
// height each one takes: storey, spandrel, entrance or a fixed value.
func describeFloors(t facade.BuildingType) string {
	if t == facade.ComplexBuilding {
		var parts []string
		for _, name := range facade.BuildingTypeNames() {
			if pt, _ := facade.ParseBuildingType(name); pt.CanBeFloorType() {
				parts = append(parts, name)
			}
		}
		return "lower and upper of " + strings.Join(parts, ", ")
	}
	p, err := facade.ProfileFor(t)
	if err != nil {
		return "-"
	}
	kinds := make([]string, len(p.Floors))
	for i, f := range p.Floors {
		kinds[i] = fmt.Sprintf("%s @ %s", strings.TrimPrefix(f.Kind.String(), t.String()+"-"), f.Height)
	}
	return strings.Join(kinds, " / ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
