package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getcontractd/contractd/pkg/config"
	"github.com/getcontractd/contractd/pkg/engine"
)

var routesFlagVals struct {
	contractsDir string
	customRoutes string
}

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the route table that would be served",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRoutes()
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
	routesCmd.Flags().StringVar(&routesFlagVals.contractsDir, "contracts", config.DefaultContractsDir, "Contracts directory")
	routesCmd.Flags().StringVar(&routesFlagVals.customRoutes, "custom-routes", "", "Path to custom routes file")
}

func runRoutes() error {
	cfg := config.DefaultServerConfiguration()
	cfg.ContractsDir = routesFlagVals.contractsDir
	cfg.CustomRoutesFile = routesFlagVals.customRoutes

	srv := engine.NewServer(cfg)
	if err := srv.Load(); err != nil {
		return err
	}

	table := srv.Table()
	for _, key := range table.Keys() {
		variants := table.Variants(key)
		fmt.Printf("%-7s %s\n", key.Method, key.Path)
		for _, v := range variants {
			states := "[no state]"
			if len(v.States) > 0 {
				states = "[" + strings.Join(v.States, ", ") + "]"
			}
			fmt.Printf("    %d %s (%s, %s)\n", v.Response.Status, states, v.Origin, v.Source)
		}
	}
	fmt.Printf("\n%d route(s)\n", table.Len())
	return nil
}
