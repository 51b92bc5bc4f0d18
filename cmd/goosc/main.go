// Command goosc is a small OSC 1.1 command-line client and listener, built
// on top of the osc, dispatch, receiver and transport packages.
package main

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/brask/goosc/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
