package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/awcullen/opcua/ua"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/amine-amaach/uaWalker/internal/format"
	"github.com/amine-amaach/uaWalker/internal/model"
	"github.com/amine-amaach/uaWalker/internal/nodeid"
)

var searchClass string

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Find nodes by name",
	Long: `Search escalates through three traversal passes (shallow, broader,
depth-unbounded but budget-capped) and stops at the first pass that
finds a display or browse name containing the term.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchClass, "class", "",
		"Restrict matches to one node class (e.g. Method, Variable)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	term := args[0]

	filter := ua.NodeClassUnspecified
	if searchClass != "" {
		filter = model.ParseNodeClass(searchClass)
		if filter == ua.NodeClassUnspecified {
			return fmt.Errorf("unknown node class %q", searchClass)
		}
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(context.Background())

	matches, err := a.search.Search(ctx, term, filter)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		color.Yellow.Printf("No nodes found matching %q\n", term)
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Node ID", "Display Name", "Class", "Parent", "Match"})
	for _, m := range matches {
		kind := "partial"
		if m.Exact {
			kind = "exact"
		}
		table.Append([]string{
			nodeid.Format(m.ID),
			format.Truncate(m.DisplayName, 30),
			format.NodeClass(m.NodeClass),
			nodeid.Format(m.Parent),
			kind,
		})
	}
	table.Render()
	fmt.Printf("\n%d matching nodes\n", len(matches))
	return nil
}
