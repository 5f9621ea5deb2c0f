package main

import (
	"os"

	"github.com/kertal/git-vegas/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
