// Command nebulis scaffolds full stack projects and generates code inside them.
package main

import (
	"os"

	"github.com/nebulis-dev/nebulis/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
