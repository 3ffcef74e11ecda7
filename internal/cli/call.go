package cli

import (
	"context"
	"fmt"

	"github.com/awcullen/opcua/ua"
	"github.com/gookit/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/amine-amaach/uaWalker/internal/format"
	"github.com/amine-amaach/uaWalker/internal/nodeid"
)

var callArgs string

var callCmd = &cobra.Command{
	Use:   "call <method> [object]",
	Short: "Call a method on the server",
	Long: `Call invokes a method. The method may be given as a node id or as a
name; a name is resolved through the progressive search, and the owning
object is the node whose browse discovered the method. When the method
is given as a node id without an object, the owner is found by one
inverse HasComponent browse.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCall,
}

func init() {
	callCmd.Flags().StringVarP(&callArgs, "args", "a", "",
		"Input arguments (JSON array or comma-separated values)")
	rootCmd.AddCommand(callCmd)
}

func runCall(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(context.Background())

	var methodID, objectID ua.NodeID
	switch {
	case len(args) == 2:
		if methodID, err = nodeid.Parse(args[0]); err != nil {
			return err
		}
		if objectID, err = nodeid.Parse(args[1]); err != nil {
			return err
		}
	default:
		if parsed, perr := nodeid.Parse(args[0]); perr == nil {
			methodID = parsed
			if objectID, err = a.browserSvc().OwnerOfMethod(ctx, methodID); err != nil {
				return err
			}
		} else {
			color.Cyan.Printf("Searching for method %q\n", args[0])
			if methodID, objectID, err = a.resolver.ResolveMethod(ctx, args[0]); err != nil {
				return err
			}
		}
	}

	inputs, err := format.ParseArguments(callArgs)
	if err != nil {
		return err
	}

	color.Cyan.Println("Method call")
	fmt.Println("  method:", nodeid.Format(methodID))
	fmt.Println("  object:", nodeid.Format(objectID))
	for i, in := range inputs {
		fmt.Printf("  in[%d]:  %s\n", i, format.Variant(in))
	}

	res, err := a.session.Call(ctx, &ua.CallRequest{
		MethodsToCall: []ua.CallMethodRequest{
			{
				ObjectID:       objectID,
				MethodID:       methodID,
				InputArguments: inputs,
			},
		},
	})
	if err != nil {
		return errors.Wrap(err, "method call failed")
	}
	if len(res.Results) == 0 {
		return errors.New("no result returned from method call")
	}

	result := res.Results[0]
	fmt.Println("  status:", format.StatusCode(result.StatusCode))
	if result.StatusCode.IsBad() {
		return errors.Errorf("method call returned 0x%08X", uint32(result.StatusCode))
	}
	for i, out := range result.OutputArguments {
		fmt.Printf("  out[%d]: %s\n", i, format.Variant(out))
	}
	return nil
}
