// Command fringe drives the flexfringe state machine learner.
//
// It learns automata from trace files, scores traces against learned
// models, renders them via Graphviz, and serves the same operations
// over the Model Context Protocol.
package main

import (
	"os"

	"github.com/deixis/fringe/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
