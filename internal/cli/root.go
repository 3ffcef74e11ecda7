// Package cli wires the engine services behind the uaWalker commands.
package cli

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/amine-amaach/uaWalker/internal/config"
	"github.com/amine-amaach/uaWalker/internal/log"
	"github.com/amine-amaach/uaWalker/internal/services"
)

// Version is set via ldflags at build time.
var Version = "0.0.1-dev"

// Flags overriding config file values.
var (
	cfgFile     string
	flagEnd     string
	flagUser    string
	flagPass    string
	flagCert    string
	flagKey     string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "uaWalker",
	Short: "Explore OPC UA servers from the command line",
	Long: `uaWalker connects to an OPC UA server and explores its address space:
recursive browsing, progressive name search, attribute reads, and
method calls resolved by name.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command. The context cancels in-flight
// requests when the process receives a termination signal.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&flagEnd, "endpoint", "e", "", "OPC UA server endpoint URL")
	rootCmd.PersistentFlags().StringVarP(&flagUser, "username", "u", "", "Username for authentication")
	rootCmd.PersistentFlags().StringVarP(&flagPass, "password", "p", "", "Password for authentication")
	rootCmd.PersistentFlags().StringVar(&flagCert, "cert", "", "Client certificate file for X.509 authentication")
	rootCmd.PersistentFlags().StringVar(&flagKey, "key", "", "Client private key file for X.509 authentication")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// app bundles one connected session with the engine services on top of
// it. Every command builds one, runs, and closes it.
type app struct {
	cfg      config.Cfg
	log      *logrus.Logger
	session  *services.SessionSvc
	cache    *services.CachedBrowser
	walker   *services.WalkerSvc
	search   *services.SearchSvc
	resolver *services.ResolverSvc
}

func loadConfig() (config.Cfg, *logrus.Logger, error) {
	cfg, err := config.GetConfigs(cfgFile)
	if err != nil {
		return cfg, nil, err
	}
	if flagEnd != "" {
		cfg.Endpoint = flagEnd
	}
	if flagUser != "" {
		cfg.Auth.Username = flagUser
	}
	if flagPass != "" {
		cfg.Auth.Password = flagPass
	}
	if flagCert != "" {
		cfg.Auth.CertFile = flagCert
	}
	if flagKey != "" {
		cfg.Auth.KeyFile = flagKey
	}
	if flagVerbose {
		cfg.LoggerConfig.Level = logrus.DebugLevel.String()
	}
	logger := log.NewLogger(cfg.LoggerConfig.Level, cfg.LoggerConfig.Format, cfg.LoggerConfig.DisableTimestamp)
	return cfg, logger, nil
}

func newApp(ctx context.Context) (*app, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}

	session, err := services.NewSessionSvc(ctx, cfg.Endpoint, cfg.Auth, logger)
	if err != nil {
		return nil, err
	}

	browser := services.NewBrowserSvc(session, logger)
	cache := services.NewCachedBrowser(browser, time.Duration(cfg.CacheTTL)*time.Second)
	walker := services.NewWalkerSvc(cache, logger)
	search := services.NewSearchSvc(walker, cfg.SearchConfig, logger)

	return &app{
		cfg:      cfg,
		log:      logger,
		session:  session,
		cache:    cache,
		walker:   walker,
		search:   search,
		resolver: services.NewResolverSvc(search, logger),
	}, nil
}

func (a *app) close(ctx context.Context) {
	a.cache.Stop()
	if err := a.session.Close(ctx); err != nil {
		a.log.WithError(err).Debugln("Closing session")
	}
}

// browserSvc returns the uncached gateway, for the inverse owner lookup.
func (a *app) browserSvc() *services.BrowserSvc {
	return services.NewBrowserSvc(a.session, a.log)
}
