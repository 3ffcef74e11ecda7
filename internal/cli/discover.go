package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/awcullen/opcua/ua"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/amine-amaach/uaWalker/internal/services"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "List the endpoints offered by the server",
	Long: `Discover asks the server for its endpoint descriptions over a
discovery-only channel, so it works without credentials.`,
	Args: cobra.NoArgs,
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	logger.WithField("endpoint", cfg.Endpoint).Infoln("Discovering endpoints")
	endpoints, err := services.DiscoverEndpoints(ctx, cfg.Endpoint)
	if err != nil {
		return err
	}

	color.Cyan.Printf("%d endpoints at %s\n", len(endpoints), cfg.Endpoint)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"URL", "Security Policy", "Mode", "Identity Tokens"})
	for _, ep := range endpoints {
		table.Append([]string{
			ep.EndpointURL,
			shortPolicyURI(ep.SecurityPolicyURI),
			securityModeName(ep.SecurityMode),
			tokenTypeNames(ep.UserIdentityTokens),
		})
	}
	table.Render()
	return nil
}

// shortPolicyURI keeps the fragment after the last '#', which is the
// readable part of a security policy URI.
func shortPolicyURI(uri string) string {
	if i := strings.LastIndex(uri, "#"); i >= 0 {
		return uri[i+1:]
	}
	return uri
}

func securityModeName(mode ua.MessageSecurityMode) string {
	switch mode {
	case ua.MessageSecurityModeNone:
		return "None"
	case ua.MessageSecurityModeSign:
		return "Sign"
	case ua.MessageSecurityModeSignAndEncrypt:
		return "SignAndEncrypt"
	default:
		return fmt.Sprintf("Unknown(%d)", mode)
	}
}

func tokenTypeNames(tokens []ua.UserTokenPolicy) string {
	seen := make(map[string]struct{}, len(tokens))
	var names []string
	for _, tok := range tokens {
		var name string
		switch tok.TokenType {
		case ua.UserTokenTypeAnonymous:
			name = "Anonymous"
		case ua.UserTokenTypeUserName:
			name = "UserName"
		case ua.UserTokenTypeCertificate:
			name = "Certificate"
		default:
			name = fmt.Sprintf("Unknown(%d)", tok.TokenType)
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}
