package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bstviz/pkg/core/input"
	"github.com/matzehuels/bstviz/pkg/pipeline"
)

// randomCommand creates the random command.
func (c *CLI) randomCommand() *cobra.Command {
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Print a random value list",
		Long: `Print 6 to 12 distinct random values of a category as a comma-separated
list, ready for --input.`,
		Example: `  bstviz random -c word
  bstviz render --input "$(bstviz random --seed 7)"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Random = true
			if opts.Category == "" {
				opts.Category = c.Config.Tree.Category
			}
			values, _, err := pipeline.Values(opts)
			if err != nil {
				return err
			}
			fmt.Println(input.Join(values))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "value category: integer (default), double, letter, word, mixed")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed (0 picks one)")

	return cmd
}
