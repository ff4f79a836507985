package main

import (
	"fmt"
	"os"

	"github.com/franz/ai-directors-chair/internal/store"
	"github.com/franz/ai-directors-chair/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version is set at build time
	Version = "dev"

	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "adc",
		Short: "AI Director's Chair - local project store for AI-assisted video production",
		Long: `adc manages the local database behind AI Director's Chair: projects,
characters, ordered scenes and their video generation jobs.

The database lives under the platform's user data directory and is
created on first use. The desktop application is the primary client;
this tool initializes and inspects the same store.`,
		Version: Version,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (optional)")
	rootCmd.PersistentFlags().String("db", "", "database file (default is the platform data directory)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "quiet output (errors only)")

	// Bind flags to viper
	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(store.DefaultDir())
		viper.AddConfigPath(".")
		viper.SetConfigName("adc")
		viper.SetConfigType("yaml")
	}

	// Read in environment variables that match
	viper.SetEnvPrefix("ADC")
	viper.AutomaticEnv()

	util.SetVerbose(viper.GetBool("verbose"))
	util.SetQuiet(viper.GetBool("quiet"))

	if err := viper.ReadInConfig(); err == nil {
		util.DebugLog("Using config file: %s", viper.ConfigFileUsed())
	}
}

// dbPath resolves the database location: the --db flag / ADC_DB env
// when given, otherwise the canonical per-user path.
func dbPath() string {
	if path := viper.GetString("db"); path != "" {
		return path
	}
	return store.DefaultPath()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
