package main

import (
	"os"

	"github.com/bnema/review-queue/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
