package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bstviz/pkg/core/bst"
	"github.com/matzehuels/bstviz/pkg/core/input"
	"github.com/matzehuels/bstviz/pkg/core/step"
	"github.com/matzehuels/bstviz/pkg/graph"
	"github.com/matzehuels/bstviz/pkg/pipeline"
)

// stepCommand creates the step command.
func (c *CLI) stepCommand() *cobra.Command {
	var (
		opts  pipeline.Options
		plain bool
		save  string
	)

	cmd := &cobra.Command{
		Use:   "step [values...]",
		Short: "Step through insertions one comparison at a time",
		Long: `Insert the given values into an empty tree one step at a time. Every
step compares the pending value with one node, moves down a level, or places
the value.

Without a terminal, or with --plain, the whole transcript is printed.`,
		Example: `  bstviz step 50 30 70 20 40
  bstviz step --random -c word
  bstviz step --plain -c letter --input "m, c, x, a"
  bstviz step --save tree.json 50 30 70 && bstviz render --from tree.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Input == "" {
				opts.Input = inputFromArgs(args)
			}
			c.Config.apply(&opts)
			return c.runStep(cmd.Context(), opts, plain, save)
		},
	}

	addBuildFlags(cmd, &opts)
	addLayoutFlags(cmd, &opts)
	cmd.Flags().StringVar(&save, "save", "", "write the final tree layout to a JSON or YAML file")
	cmd.Flags().BoolVar(&plain, "plain", false, "print the transcript instead of starting the interactive view")

	return cmd
}

func (c *CLI) runStep(ctx context.Context, opts pipeline.Options, plain bool, save string) error {
	logger := loggerFromContext(ctx)
	opts.Logger = logger

	if err := opts.ValidateForBuild(); err != nil {
		return err
	}
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}
	values, dropped, err := pipeline.Values(opts)
	if err != nil {
		return err
	}
	cat, _ := bst.ParseCategory(opts.Category)

	s := step.New(cat, values, opts.Bounds())
	s.OnMutation = func(e step.Event) {
		logger.Debug("tree changed", "kind", e.Kind, "value", e.Value, "nodes", s.Tree().Len())
	}

	printInfo("Values: %s", StyleValue.Render(input.Join(values)))
	if dropped > 0 {
		printWarning("%s", input.Result{Dropped: dropped}.Status())
	}

	if plain {
		if err := printTranscript(s); err != nil {
			return err
		}
	} else {
		final, err := tea.NewProgram(NewStepModel(s), tea.WithContext(ctx)).Run()
		if err != nil {
			return fmt.Errorf("run stepper: %w", err)
		}
		if m, ok := final.(StepModel); ok && m.Status() != "" {
			printDetail("%s", m.Status())
		}
	}

	if save != "" {
		if err := saveLayout(s, opts, save); err != nil {
			return err
		}
		printFile(save, fmt.Sprintf("%d nodes", s.Tree().Len()))
	}
	return nil
}

// saveLayout writes the stepper's current tree. Nodes keep their planned
// coordinates.
func saveLayout(s *step.Stepper, opts pipeline.Options, path string) error {
	l := graph.FromTree(s.Tree(), opts.Width, opts.Height, opts.Radius)
	l.Style = opts.Style
	if err := graph.WriteLayoutFile(l, path); err != nil {
		return fmt.Errorf("save layout: %w", err)
	}
	return nil
}

// printTranscript runs s to completion, one line per step.
func printTranscript(s *step.Stepper) error {
	n := 0
	for !s.Done() {
		n++
		e := s.Next()
		line := fmt.Sprintf("%3d  %s", n, e.Message)
		if e.Kind.Mutates() {
			fmt.Println(StyleValue.Render(line))
		} else {
			fmt.Println(StyleDim.Render(line))
		}
	}
	printSuccess("%s", s.Next().Message)
	if err := s.Tree().Check(); err != nil {
		printError("%v", err)
		return err
	}
	fmt.Println(traversalTable(s.Tree(), bst.Orders))
	return nil
}
