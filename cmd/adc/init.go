package main

import (
	"github.com/franz/ai-directors-chair/internal/store"
	"github.com/franz/ai-directors-chair/internal/util"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the project database and schema",
	Long: `Ensure the project database exists with its full schema. This is
the same initialization the desktop application runs at startup: safe
to repeat, never destructive to existing data.

A failure here is reported but does not abort; the application is
expected to keep running without persistence.`,
	Run: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) {
	path := dbPath()

	db, err := store.Open(path)
	if err != nil {
		// Startup treats a missing store as degraded, not fatal
		util.ErrorLog("Failed to initialize database: %v", err)
		return
	}
	defer db.Close()

	util.SuccessLog("Database initialized at: %s", path)
}
