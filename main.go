package main

import (
	"os"

	"bakmodel/src/cli"
)

func main() {
	os.Exit(cli.Execute())
}
