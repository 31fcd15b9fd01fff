package main

import (
	"os"

	"quicknotes/internal/cli"
	"quicknotes/internal/tui"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], cli.Options{Interactive: tui.Run}))
}
