package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/getcontractd/contractd/pkg/config"
	"github.com/getcontractd/contractd/pkg/engine"
	"github.com/getcontractd/contractd/pkg/logging"
)

// shutdownTimeout is the maximum time to wait for graceful shutdown.
const shutdownTimeout = 30 * time.Second

type serveFlags struct {
	port         int
	host         string
	contractsDir string
	customRoutes string
	configFile   string
	logLevel     string
	logFormat    string
}

var serveFlagVals serveFlags

var serveCmd *cobra.Command

func init() {
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the mock server (foreground)",
		Example: `  # Serve contracts from ./pacts on the default port
  contractd serve

  # Custom contracts directory and port
  contractd serve --contracts ./contracts --port 3001

  # With statically declared custom routes
  contractd serve --custom-routes custom-routes.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(&serveFlagVals)
		},
	}

	rootCmd.AddCommand(serveCmd)

	f := &serveFlagVals
	serveCmd.Flags().IntVarP(&f.port, "port", "p", config.DefaultPort, "HTTP server port")
	serveCmd.Flags().StringVar(&f.host, "host", "", "Listen address (default: all interfaces)")
	serveCmd.Flags().StringVar(&f.contractsDir, "contracts", config.DefaultContractsDir, "Contracts directory (one subdirectory per provider)")
	serveCmd.Flags().StringVar(&f.customRoutes, "custom-routes", "", "Path to custom routes file (YAML or JSON)")
	serveCmd.Flags().StringVarP(&f.configFile, "config", "c", "", "Path to server configuration file")
	serveCmd.Flags().StringVar(&f.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	serveCmd.Flags().StringVar(&f.logFormat, "log-format", "text", "Log format (text, json)")
}

func runServe(f *serveFlags) error {
	cfg, err := resolveConfig(f)
	if err != nil {
		return err
	}

	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
	})

	srv := engine.NewServer(cfg, engine.WithLogger(log))
	if err := srv.Load(); err != nil {
		return err
	}
	if err := srv.Start(); err != nil {
		return err
	}

	printBanner(srv, cfg)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Stop(ctx)
}

// resolveConfig merges the optional config file with flag overrides. Flags
// that were set explicitly win over file values.
func resolveConfig(f *serveFlags) (*config.ServerConfiguration, error) {
	cfg := config.DefaultServerConfiguration()
	if f.configFile != "" {
		loaded, err := config.LoadServerConfiguration(f.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := serveCmd.Flags()
	if flags.Changed("port") || cfg.Port == 0 {
		cfg.Port = f.port
	}
	if flags.Changed("host") {
		cfg.Host = f.host
	}
	if flags.Changed("contracts") || cfg.ContractsDir == "" {
		cfg.ContractsDir = f.contractsDir
	}
	if flags.Changed("custom-routes") {
		cfg.CustomRoutesFile = f.customRoutes
	}
	if flags.Changed("log-level") || cfg.LogLevel == "" {
		cfg.LogLevel = f.logLevel
	}
	if flags.Changed("log-format") || cfg.LogFormat == "" {
		cfg.LogFormat = f.logFormat
	}
	return cfg, nil
}

// printBanner echoes the effective configuration and lists the control
// endpoints plus every known provider state, so an operator can drive the
// server without reading contracts first.
func printBanner(srv *engine.Server, cfg *config.ServerConfiguration) {
	fmt.Printf("contractd mock server listening on http://%s\n", srv.Addr())
	fmt.Printf("  contracts:     %s\n", cfg.ContractsDir)
	if cfg.CustomRoutesFile != "" {
		fmt.Printf("  custom routes: %s\n", cfg.CustomRoutesFile)
	}
	fmt.Printf("  routes loaded: %d\n\n", srv.Table().Len())

	fmt.Println("Control endpoints:")
	fmt.Printf("  POST %s   {\"state\": \"name\"} or {\"states\": [...]}, optional \"path\"\n", engine.StatePath)
	fmt.Printf("  POST %s   reset to default behavior\n\n", engine.ResetPath)

	states := srv.Registry().Known()
	if len(states) == 0 {
		fmt.Println("No provider states declared.")
		return
	}
	fmt.Println("Available provider states:")
	for _, name := range states {
		fmt.Printf("  - %s\n", name)
	}
}
