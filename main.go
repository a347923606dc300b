package main

import (
	"os"

	"github.com/finchat-dev/finchat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
