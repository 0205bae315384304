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
	if err := bootstrap.Start(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "company-research: %v\n", err)
		return 1
	}
	return 0
}
