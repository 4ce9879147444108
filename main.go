// The main package for the urlcheck executable.
package main

import (
	"github.com/probelab/urlcheck/cmd"
)

// main defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
