package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Jaideep25/Pokedex/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
