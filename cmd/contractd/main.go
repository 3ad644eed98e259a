// contractd CLI - contract-driven mock server with provider-state routing
package main

import "github.com/getcontractd/contractd/pkg/cli"

func main() {
	cli.Execute()
}
