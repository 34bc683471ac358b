package main

import (
	"os"

	"github.com/mpandit/prepterm/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
