package main

import (
	"os"

	"github.com/nikostojak/repertoire/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
