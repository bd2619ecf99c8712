package main

import (
	"os"

	"github.com/msto63/logchain/cmd/logchain/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
