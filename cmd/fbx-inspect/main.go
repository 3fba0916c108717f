// fbx-inspect is a small command-line tool over the library: it lists the
// object graph of a binary FBX file, dumps properties, extracts embedded
// textures and converts scenes to glTF.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fbx-inspect",
	Short: "Inspect and convert binary FBX files",
	Long: `fbx-inspect loads a binary FBX file and exposes its object graph.

Examples:
  fbx-inspect objects scene.fbx
  fbx-inspect hierarchy scene.fbx
  fbx-inspect dump scene.fbx
  fbx-inspect export scene.fbx -o scene.glb
  fbx-inspect thumbs scene.fbx -d textures/`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
