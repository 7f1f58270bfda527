package main

import (
	"os"

	"github.com/rlhub/datacat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
