package main

import (
	"os"

	"github.com/abhisek/promptcheck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
