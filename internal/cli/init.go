package cli

import (
	"bytes"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/facadeplan/pkg/config"
	"github.com/matzehuels/facadeplan/pkg/facade"
)

// initCommand writes a starter building file.
func (c *CLI) initCommand() *cobra.Command {
	var (
		force       bool
		interactive bool
		typ         string
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter building file",
		Long: `Write a starter building file.

The file describes a 12 unit office building on a 10 by 10 footprint.
Use --interactive to pick the building type from a list.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfigFile
			if len(args) == 1 {
				path = args[0]
			}

			f := config.Default()
			switch {
			case interactive:
				t, ok, err := pickBuildingType(f.Building.Type)
				if err != nil {
					return err
				}
				if !ok {
					printInfo("Cancelled")
					return nil
				}
				f.Building.Type = t
			case typ != "":
				t, err := facade.ParseBuildingType(typ)
				if err != nil {
					return userError(err)
				}
				f.Building.Type = t
			}

			if err := writeBuildingFile(path, f, force); err != nil {
				return err
			}
			printSuccess("Wrote %s building", f.Building.Type)
			printFile(path)
			printNextStep("Plan it", appName+" plan "+path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick the building type interactively")
	cmd.Flags().StringVarP(&typ, "type", "t", "", "building type: "+typeList())
	cmd.MarkFlagsMutuallyExclusive("interactive", "type")
	_ = cmd.RegisterFlagCompletionFunc("type", completeBuildingTypes)

	return cmd
}

// writeBuildingFile encodes f to path, refusing to replace a file unless force is set.
func writeBuildingFile(path string, f config.File, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	var buf bytes.Buffer
	if err := config.Write(&buf, f); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// pickBuildingType runs the type list and reports the selection.
func pickBuildingType(current facade.BuildingType) (facade.BuildingType, bool, error) {
	final, err := tea.NewProgram(NewTypeListModel(current)).Run()
	if err != nil {
		return 0, false, fmt.Errorf("type picker: %w", err)
	}
	m, ok := final.(TypeListModel)
	if !ok || m.Selected == 0 {
		return 0, false, nil
	}
	return m.Selected, true, nil
}
