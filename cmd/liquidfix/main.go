// Command liquidfix is the thin entry point for the solver CLI; all the
// actual command wiring lives in internal/cli.
package main

import "github.com/alanz/liquidfix/internal/cli"

func main() {
	cli.Execute()
}
