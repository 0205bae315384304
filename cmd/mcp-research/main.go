// Command mcp-research serves the company research tools to MCP clients
// over stdio. Only protocol messages are written to stdout.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonesrussell/north-cloud/company-research/internal/bootstrap"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := bootstrap.StartMCP(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "mcp-research: %v\n", err)
		return 1
	}
	return 0
}
