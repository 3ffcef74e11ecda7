package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/awcullen/opcua/ua"
	"github.com/gammazero/workerpool"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/amine-amaach/uaWalker/internal/format"
	"github.com/amine-amaach/uaWalker/internal/model"
	"github.com/amine-amaach/uaWalker/internal/nodeid"
)

var (
	browseDepth   int
	browseTree    bool
	browseCompact bool
	browseValues  bool
)

// readChunkSize keeps each value read inside common server operation
// limits while letting the pool overlap round trips.
const readChunkSize = 20

var browseCmd = &cobra.Command{
	Use:   "browse [node]",
	Short: "Browse the address space recursively",
	Long: `Browse walks the address space from the given node (default: the
Objects folder) down to --depth, tolerating per-node failures, and
renders the discovered nodes as a table or a tree.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().IntVarP(&browseDepth, "depth", "d", 3, "Maximum depth for recursive browsing")
	browseCmd.Flags().BoolVarP(&browseTree, "tree", "t", false, "Render the result as a tree")
	browseCmd.Flags().BoolVar(&browseCompact, "compact", false, "Use a compact table")
	browseCmd.Flags().BoolVarP(&browseValues, "values", "V", false, "Read values of Variable nodes")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	root := ua.ObjectIDObjectsFolder
	if len(args) == 1 {
		parsed, err := nodeid.Parse(args[0])
		if err != nil {
			return err
		}
		root = parsed
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(context.Background())

	color.Cyan.Printf("Browsing address space from %s (depth %d)\n", nodeid.Format(root), browseDepth)

	if browseTree {
		tree, stats, err := a.walker.BrowseTree(ctx, root, browseDepth)
		if tree != nil {
			printTree(tree, "", true)
			fmt.Printf("\n%d nodes discovered, %d skipped on error\n", tree.Count()-1, stats.Skipped)
		}
		return err
	}

	nodes, stats, err := a.walker.BrowseFlat(ctx, root, browseDepth)
	if err != nil {
		return err
	}
	sort.Slice(nodes, func(i, j int) bool {
		return nodeid.Compare(nodes[i].ID, nodes[j].ID) < 0
	})

	values := map[ua.NodeID]string{}
	if browseValues {
		values = a.readVariableValues(ctx, nodes)
	}

	renderBrowseTable(nodes, values)
	fmt.Printf("\n%d nodes discovered, %d skipped on error\n", len(nodes), stats.Skipped)
	return nil
}

// readVariableValues reads the value attribute of every Variable node,
// in chunks dispatched to a bounded worker pool so the reads overlap.
func (a *app) readVariableValues(ctx context.Context, nodes []model.ChildReference) map[ua.NodeID]string {
	var variables []ua.NodeID
	for _, n := range nodes {
		if n.NodeClass == ua.NodeClassVariable {
			variables = append(variables, n.ID)
		}
	}
	if len(variables) == 0 {
		return nil
	}

	var mu sync.Mutex
	values := make(map[ua.NodeID]string, len(variables))
	wp := workerpool.New(a.cfg.BrowseWorkers)

	for start := 0; start < len(variables); start += readChunkSize {
		chunk := variables[start:min(start+readChunkSize, len(variables))]
		wp.Submit(func() {
			results, err := a.session.ReadValues(ctx, chunk)
			if err != nil {
				a.log.WithError(err).Warnln("Value read failed")
				return
			}
			mu.Lock()
			defer mu.Unlock()
			for i, dv := range results {
				if i >= len(chunk) {
					break
				}
				if dv.StatusCode.IsGood() {
					values[chunk[i]] = format.Truncate(format.Variant(dv.Value), 24)
				} else {
					values[chunk[i]] = format.StatusCode(dv.StatusCode)
				}
			}
		})
	}
	wp.StopWait()
	return values
}

func renderBrowseTable(nodes []model.ChildReference, values map[ua.NodeID]string) {
	table := tablewriter.NewWriter(os.Stdout)
	if browseCompact {
		table.SetHeader([]string{"ID", "Name", "Class", "Value"})
	} else {
		table.SetHeader([]string{"Node ID", "Display Name", "Class", "Type", "Value"})
	}

	for _, n := range nodes {
		value, ok := values[n.ID]
		if !ok {
			value = "-"
		}
		if browseCompact {
			table.Append([]string{
				nodeid.Format(n.ID),
				format.Truncate(n.DisplayName, 20),
				format.NodeClass(n.NodeClass),
				value,
			})
			continue
		}
		typeDef := "-"
		if n.TypeDefinition != nil {
			typeDef = format.Truncate(nodeid.Format(n.TypeDefinition), 25)
		}
		table.Append([]string{
			nodeid.Format(n.ID),
			format.Truncate(n.DisplayName, 30),
			format.NodeClass(n.NodeClass),
			typeDef,
			value,
		})
	}
	table.Render()
}

func printTree(node *model.TreeNode, prefix string, isRoot bool) {
	if isRoot {
		fmt.Printf("%s\n", color.Cyan.Sprint(nodeid.Format(node.Ref.ID)))
	}
	for i, child := range node.Children {
		connector, childPrefix := "├── ", prefix+"│   "
		if i == len(node.Children)-1 {
			connector, childPrefix = "└── ", prefix+"    "
		}
		fmt.Printf("%s%s%s  %s  %s\n",
			prefix, connector,
			child.Ref.DisplayName,
			format.NodeClass(child.Ref.NodeClass),
			color.Gray.Sprint(nodeid.Format(child.Ref.ID)),
		)
		printTree(child, childPrefix, false)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
