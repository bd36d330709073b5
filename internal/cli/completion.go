package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bstviz/pkg/core/bst"
	"github.com/matzehuels/bstviz/pkg/graph"
	"github.com/matzehuels/bstviz/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for bstviz. Flag values such as
--category, --style, --order and --format complete too.

  $ source <(bstviz completion bash)
  $ bstviz completion zsh > "${fpath[1]}/_bstviz"
  $ bstviz completion fish > ~/.config/fish/completions/bstviz.fish
  PS> bstviz completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// flagValues maps enum flags to their accepted values.
func flagValues() map[string][]string {
	orders := make([]string, len(bst.Orders))
	for i, o := range bst.Orders {
		orders[i] = o.String()
	}
	return map[string][]string{
		"category": {"integer", "double", "letter", "word", "mixed"},
		"style":    {graph.StyleSimple, graph.StyleOutlined, graph.StyleGraphviz},
		"order":    orders,
		"format":   pipeline.Formats,
	}
}

// registerFlagCompletions attaches value completion to every enum flag under
// root.
func registerFlagCompletions(root *cobra.Command) {
	values := flagValues()
	var walk func(*cobra.Command)
	walk = func(cmd *cobra.Command) {
		for name, vals := range values {
			if cmd.Flags().Lookup(name) == nil {
				continue
			}
			_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(vals, cobra.ShellCompDirectiveNoFileComp))
		}
		for _, sub := range cmd.Commands() {
			walk(sub)
		}
	}
	walk(root)
}
