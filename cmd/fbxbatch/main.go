// Command fbxbatch batch-imports FBX files, strips non-geometry objects
// and merges the remaining meshes by material.
package main

import (
	"os"

	"github.com/draycall/fbxbatch/internal/cli"
	"github.com/draycall/fbxbatch/pkg/version"
)

func main() {
	os.Exit(run())
}

// run executes the root command and maps the outcome to an exit code.
func run() int {
	if err := cli.Execute(version.GetVersion()); err != nil {
		return 1
	}
	return 0
}
