package main

import (
	"os"

	"github.com/oraad/ogero-sensors/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
