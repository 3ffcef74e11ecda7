package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/awcullen/opcua/ua"
	"github.com/gookit/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/amine-amaach/uaWalker/internal/format"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show server status, build info and namespaces",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(context.Background())

	results, err := a.session.ReadValues(ctx, []ua.NodeID{
		ua.VariableIDServerServerStatus,
		ua.VariableIDServerNamespaceArray,
	})
	if err != nil {
		return err
	}
	if len(results) < 2 {
		return errors.New("server returned an incomplete read result")
	}

	color.Cyan.Printf("Server at %s\n", a.session.Endpoint)

	if status, ok := results[0].Value.(ua.ServerStatusDataType); ok && results[0].StatusCode.IsGood() {
		fmt.Printf("  state:        %s\n", format.ServerState(status.State))
		fmt.Printf("  current time: %s\n", status.CurrentTime.UTC().Format(time.RFC3339))
		fmt.Printf("  start time:   %s\n", status.StartTime.UTC().Format(time.RFC3339))
		fmt.Printf("  uptime:       %s\n", status.CurrentTime.Sub(status.StartTime).Round(time.Second))
		printBuildInfo(status.BuildInfo)
	} else {
		fmt.Printf("  status:       %s\n", format.StatusCode(results[0].StatusCode))
	}

	if namespaces, ok := results[1].Value.([]string); ok && results[1].StatusCode.IsGood() {
		fmt.Println("  namespaces:")
		for i, uri := range namespaces {
			fmt.Printf("    ns=%d  %s\n", i, uri)
		}
	}
	return nil
}

func printBuildInfo(bi ua.BuildInfo) {
	if bi.ProductName == "" && bi.ManufacturerName == "" {
		return
	}
	fmt.Printf("  product:      %s", bi.ProductName)
	if bi.SoftwareVersion != "" {
		fmt.Printf(" %s", bi.SoftwareVersion)
	}
	fmt.Println()
	if bi.ManufacturerName != "" {
		fmt.Printf("  manufacturer: %s\n", bi.ManufacturerName)
	}
	if bi.ProductURI != "" {
		fmt.Printf("  product uri:  %s\n", bi.ProductURI)
	}
}
