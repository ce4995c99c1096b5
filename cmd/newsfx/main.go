package main

import (
	"os"

	"github.com/newsfx/trader/cmd/newsfx/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
