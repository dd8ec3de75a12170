package main

import (
	"os"

	"github.com/spigell/job-finder/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
