package main

import (
	"os"

	"github.com/ksuda/kioku/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
