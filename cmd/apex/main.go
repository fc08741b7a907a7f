package main

import (
	"fmt"
	"os"

	"github.com/apexmd/apex/cmd/apex/internal/cli"
)

func main() {
	if err := cli.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
