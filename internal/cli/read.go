package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/awcullen/opcua/ua"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/amine-amaach/uaWalker/internal/format"
	"github.com/amine-amaach/uaWalker/internal/nodeid"
)

var (
	readAll    bool
	readValue  bool
	readSearch bool
)

var readCmd = &cobra.Command{
	Use:   "read <node|name> [node|name ...]",
	Short: "Read attributes of one or more nodes",
	Long: `Read fetches attributes of the given nodes. Arguments are parsed as
node ids; with --search, arguments that do not parse are resolved by
name through the progressive search instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRead,
}

func init() {
	readCmd.Flags().BoolVarP(&readAll, "all-attributes", "A", false, "Read every attribute, not just the common ones")
	readCmd.Flags().BoolVar(&readValue, "value", false, "Print only the value attribute")
	readCmd.Flags().BoolVarP(&readSearch, "search", "s", false, "Resolve unparseable arguments by name")
	rootCmd.AddCommand(readCmd)
}

// attributeRow pairs an attribute id with its display label, in the
// order the table lists them.
type attributeRow struct {
	id    uint32
	label string
}

var commonAttributes = []attributeRow{
	{ua.AttributeIDNodeID, "NodeId"},
	{ua.AttributeIDNodeClass, "NodeClass"},
	{ua.AttributeIDBrowseName, "BrowseName"},
	{ua.AttributeIDDisplayName, "DisplayName"},
	{ua.AttributeIDDescription, "Description"},
	{ua.AttributeIDValue, "Value"},
}

var extraAttributes = []attributeRow{
	{ua.AttributeIDDataType, "DataType"},
	{ua.AttributeIDValueRank, "ValueRank"},
	{ua.AttributeIDAccessLevel, "AccessLevel"},
	{ua.AttributeIDUserAccessLevel, "UserAccessLevel"},
	{ua.AttributeIDMinimumSamplingInterval, "MinimumSamplingInterval"},
	{ua.AttributeIDHistorizing, "Historizing"},
	{ua.AttributeIDExecutable, "Executable"},
	{ua.AttributeIDUserExecutable, "UserExecutable"},
	{ua.AttributeIDIsAbstract, "IsAbstract"},
	{ua.AttributeIDEventNotifier, "EventNotifier"},
	{ua.AttributeIDWriteMask, "WriteMask"},
	{ua.AttributeIDUserWriteMask, "UserWriteMask"},
}

func runRead(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(context.Background())

	for _, arg := range args {
		id, err := a.resolveTarget(ctx, arg)
		if err != nil {
			return err
		}
		if readValue {
			if err := a.printValue(ctx, id); err != nil {
				return err
			}
			continue
		}
		if err := a.printAttributes(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// resolveTarget turns one command line argument into a node id. A
// syntactically valid node id is used as is; anything else is a name,
// resolved by search when --search is set.
func (a *app) resolveTarget(ctx context.Context, arg string) (ua.NodeID, error) {
	id, err := nodeid.Parse(arg)
	if err == nil {
		return id, nil
	}
	if !readSearch {
		return nil, err
	}
	a.log.WithField("name", arg).Debugln("Resolving target by search")
	matches, serr := a.search.Search(ctx, arg, ua.NodeClassUnspecified)
	if serr != nil {
		return nil, serr
	}
	if len(matches) == 0 {
		return nil, errors.Errorf("no node named %q found", arg)
	}
	for _, m := range matches {
		if m.Exact {
			return m.ID, nil
		}
	}
	return matches[0].ID, nil
}

func (a *app) printValue(ctx context.Context, id ua.NodeID) error {
	results, err := a.session.ReadValues(ctx, []ua.NodeID{id})
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return errors.Errorf("no read result for %s", nodeid.Format(id))
	}
	dv := results[0]
	if dv.StatusCode.IsBad() {
		fmt.Printf("%s = %s\n", nodeid.Format(id), format.StatusCode(dv.StatusCode))
		return nil
	}
	fmt.Printf("%s = %s\n", nodeid.Format(id), format.Variant(dv.Value))
	return nil
}

func (a *app) printAttributes(ctx context.Context, id ua.NodeID) error {
	rows := commonAttributes
	if readAll {
		rows = append(append([]attributeRow{}, commonAttributes...), extraAttributes...)
	}

	nodes := make([]ua.ReadValueID, len(rows))
	for i, row := range rows {
		nodes[i] = ua.ReadValueID{NodeID: id, AttributeID: row.id}
	}
	res, err := a.session.Read(ctx, &ua.ReadRequest{
		NodesToRead:        nodes,
		TimestampsToReturn: ua.TimestampsToReturnBoth,
	})
	if err != nil {
		return err
	}

	color.Cyan.Println(nodeid.Format(id))
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Attribute", "Value"})
	for i, dv := range res.Results {
		if i >= len(rows) {
			break
		}
		if dv.StatusCode.IsBad() {
			// Most attributes only exist on some node classes.
			if readAll {
				table.Append([]string{rows[i].label, format.StatusCode(dv.StatusCode)})
			}
			continue
		}
		table.Append([]string{rows[i].label, formatAttribute(rows[i].id, dv.Value)})
	}
	table.Render()
	return nil
}

// formatAttribute renders attributes whose raw value is an enum or a
// bit mask; everything else goes through the generic variant formatter.
func formatAttribute(attributeID uint32, v ua.Variant) string {
	switch attributeID {
	case ua.AttributeIDNodeClass:
		if c, ok := v.(int32); ok {
			return format.NodeClass(ua.NodeClass(c))
		}
	case ua.AttributeIDAccessLevel, ua.AttributeIDUserAccessLevel:
		if b, ok := v.(byte); ok {
			return format.AccessLevel(b)
		}
	}
	return format.Variant(v)
}
