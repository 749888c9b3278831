package main

import (
	"os"

	"github.com/exply-app/exply/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
