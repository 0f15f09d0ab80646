package main

import (
	"os"

	"github.com/msto63/gwent/cmd/gwent/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
