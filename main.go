package main

import (
	"os"

	"github.com/writewithwrabit/wordstreak/cli"
)

var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
