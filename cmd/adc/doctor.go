package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/franz/ai-directors-chair/internal/store"
	"github.com/franz/ai-directors-chair/internal/util"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run diagnostic checks on the project database",
	Long: `Run diagnostic checks to ensure the project store can operate
correctly.

This command checks:
- SQLite driver availability and version
- Data directory existence and write permission
- Database accessibility and schema
- Database file integrity and size

Use this command to troubleshoot issues before filing a bug against
the desktop application.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

type checkResult struct {
	name    string
	message string
	error   bool
	warning bool
}

func runDoctor(cmd *cobra.Command, args []string) error {
	util.InfoLog("=== ADC Doctor - Store Diagnostics ===")
	util.InfoLog("")

	path := dbPath()

	results := []checkResult{
		checkSQLite(),
		checkDataDir(filepath.Dir(path)),
		checkDatabase(path),
	}

	hasErrors := false
	for _, r := range results {
		symbol := "✓"
		if r.error {
			symbol = "✗"
			hasErrors = true
		} else if r.warning {
			symbol = "⚠"
		}

		line := fmt.Sprintf("[%s] %s", symbol, r.name)
		if r.message != "" {
			line += fmt.Sprintf(": %s", r.message)
		}

		switch {
		case r.error:
			util.ErrorLog("%s", line)
		case r.warning:
			util.WarnLog("%s", line)
		default:
			util.SuccessLog("%s", line)
		}
	}

	util.InfoLog("")
	if hasErrors {
		util.ErrorLog("Some checks failed. The desktop application will run without persistence.")
		return fmt.Errorf("store diagnostics failed")
	}
	util.SuccessLog("All checks passed. Store is ready at %s", path)
	return nil
}

// checkSQLite verifies the embedded SQLite driver works
func checkSQLite() checkResult {
	version := store.SQLiteVersion()
	if version == "" {
		return checkResult{
			name:    "SQLite",
			error:   true,
			message: "driver unavailable",
		}
	}
	return checkResult{
		name:    "SQLite",
		message: fmt.Sprintf("version %s", version),
	}
}

// checkDataDir verifies the data directory exists and is writable
func checkDataDir(dir string) checkResult {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return checkResult{
			name:    "Data directory",
			error:   true,
			message: fmt.Sprintf("%s: %v", dir, err),
		}
	}

	probe := filepath.Join(dir, ".adc-write-test")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return checkResult{
			name:    "Data directory",
			error:   true,
			message: fmt.Sprintf("%s is not writable: %v", dir, err),
		}
	}
	os.Remove(probe)

	return checkResult{
		name:    "Data directory",
		message: dir,
	}
}

// checkDatabase opens the store, runs an integrity check and reports
// the on-disk size
func checkDatabase(path string) checkResult {
	db, err := store.Open(path)
	if err != nil {
		return checkResult{
			name:    "Database",
			error:   true,
			message: fmt.Sprintf("cannot open %s: %v", path, err),
		}
	}
	defer db.Close()

	if err := db.CheckIntegrity(); err != nil {
		return checkResult{
			name:    "Database",
			error:   true,
			message: err.Error(),
		}
	}

	msg := path
	if info, err := os.Stat(path); err == nil {
		msg = fmt.Sprintf("%s (%s)", path, humanize.Bytes(uint64(info.Size())))
	}

	return checkResult{
		name:    "Database",
		message: msg,
	}
}
