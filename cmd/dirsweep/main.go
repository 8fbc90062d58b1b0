package main

import (
	"os"

	"dirsweep/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
