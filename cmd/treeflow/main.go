package main

import (
	"os"

	"github.com/ariel-frischer/treeflow/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
