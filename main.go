package main

import (
	"os"

	"github.com/abhisek/itihas/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
