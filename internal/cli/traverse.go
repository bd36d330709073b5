package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bstviz/pkg/core/bst"
	"github.com/matzehuels/bstviz/pkg/pipeline"
)

// traverseCommand creates the traverse command.
func (c *CLI) traverseCommand() *cobra.Command {
	var (
		opts  pipeline.Options
		order string
		from  string
	)

	cmd := &cobra.Command{
		Use:   "traverse [values...]",
		Short: "Print the traversal sequences of a tree",
		Example: `  bstviz traverse 50 30 70 20 40
  bstviz traverse -c letter --input "m, c, x" --order pre-order`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if from != "" {
				if err := loadLayoutFile(&opts, from); err != nil {
					return err
				}
			} else if opts.Input == "" {
				opts.Input = inputFromArgs(args)
			}
			c.Config.apply(&opts)
			return runTraverse(cmd.Context(), opts, order)
		},
	}

	addBuildFlags(cmd, &opts)
	cmd.Flags().StringVar(&from, "from", "", "read the tree from a saved JSON or YAML layout")
	cmd.Flags().StringVar(&order, "order", "", "only this traversal: in-order, pre-order, post-order")

	return cmd
}

func runTraverse(ctx context.Context, opts pipeline.Options, order string) error {
	logger := loggerFromContext(ctx)

	orders := bst.Orders
	if order != "" {
		o, err := bst.ParseOrder(order)
		if err != nil {
			return err
		}
		orders = []bst.Order{o}
	}

	opts.Logger = logger
	t, _, dropped, err := pipeline.Build(opts)
	if err != nil {
		return err
	}
	logger.Debug("built tree", "nodes", t.Len(), "depth", t.MaxDepth(), "dropped", dropped)

	fmt.Println(traversalTable(t, orders))
	if dropped > 0 {
		printWarning("Some inputs were invalid or duplicates and have been ignored.")
	}
	return nil
}

// traversalTable renders one row per order.
func traversalTable(t *bst.Tree, orders []bst.Order) string {
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []string{o.String(), strings.Join(t.Strings(o), " → ")})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Order", "Sequence").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == -1: // header
				return styleHeader.Padding(0, 1)
			case col == 0:
				return base.Foreground(colorCyan)
			default:
				return base.Foreground(colorWhite)
			}
		}).
		Render()
}
