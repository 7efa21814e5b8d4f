package main

import (
	"os"

	"github.com/moneta-lang/moneta/cmd/moneta/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
