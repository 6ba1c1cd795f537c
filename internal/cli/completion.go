package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/facadeplan/pkg/facade"
	"github.com/matzehuels/facadeplan/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for facadeplan.

Besides commands and flags, the scripts complete building types for --type,
--lower and --upper, output formats for --format (one entry of the comma
separated list at a time) and building files (*.toml) for plan and solve:

  $ facadeplan plan --type <TAB>
  apartment  commercial  complex  factory  house  office
  $ facadeplan plan -f svg,<TAB>
  svg,dot  svg,json  svg,pdf  svg,png  svg,tree

Bash:
  $ source <(facadeplan completion bash)

Zsh:
  $ facadeplan completion zsh > "${fpath[1]}/_facadeplan"

Fish:
  $ facadeplan completion fish > ~/.config/fish/completions/facadeplan.fish

PowerShell:
  PS> facadeplan completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// completeBuildingTypes offers every building type with its floor pattern
// as the description.
func completeBuildingTypes(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, name := range facade.BuildingTypeNames() {
		if !strings.HasPrefix(name, toComplete) {
			continue
		}
		t, err := facade.ParseBuildingType(name)
		if err != nil {
			continue
		}
		out = append(out, fmt.Sprintf("%s\t%s", name, describeFloors(t)))
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeFormats completes the last entry of a comma separated format
// list, skipping formats already named.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	done := strings.Split(toComplete, ",")
	last := done[len(done)-1]
	prefix := toComplete[:len(toComplete)-len(last)]
	done = done[:len(done)-1]

	var out []string
	for _, f := range formatNames() {
		if slices.Contains(done, f) || !strings.HasPrefix(f, last) {
			continue
		}
		out = append(out, prefix+f)
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// completeBuildingFile completes the single building file argument.
func completeBuildingFile(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"toml"}, cobra.ShellCompDirectiveFilterFileExt
}

// formatNames lists the output formats, svg first.
func formatNames() []string {
	names := make([]string, 0, len(pipeline.ValidFormats))
	for f := range pipeline.ValidFormats {
		if f != pipeline.FormatSVG {
			names = append(names, f)
		}
	}
	slices.Sort(names)
	return append([]string{pipeline.FormatSVG}, names...)
}
