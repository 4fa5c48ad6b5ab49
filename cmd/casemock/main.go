// Package main is the entry point for the casemock CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/casemock/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
