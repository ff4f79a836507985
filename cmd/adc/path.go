package main

import (
	"fmt"

	"github.com/franz/ai-directors-chair/internal/store"
	"github.com/spf13/cobra"
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the application data directory",
	Long: `Print the absolute path of the directory holding the project
database. This is the same directory the desktop application queries
at startup. The command always succeeds; when the platform directory
cannot be determined it falls back to the current directory.`,
	Run: runPath,
}

func init() {
	rootCmd.AddCommand(pathCmd)
}

func runPath(cmd *cobra.Command, args []string) {
	fmt.Println(store.DefaultDir())
}
