package main

import (
	"os"

	"github.com/tanmaysane/studymate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
