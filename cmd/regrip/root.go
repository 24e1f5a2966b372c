package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose  bool
	quiet    bool
	jsonOut  bool
	codepage string
)

var rootCmd = &cobra.Command{
	Use:   "regrip",
	Short: "Classify Windows registry hives and extract timeline events",
	Long: `regrip reads Windows Registry hive files, detects which well-known
hive they are (NTUSER, SOFTWARE, SECURITY, SYSTEM, SAM), and runs every key
through a weighted set of interpretation plugins, producing a stream of
timestamped events suitable for timeline analysis.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		StringVar(&codepage, "codepage", "", "Codepage for 8-bit key/value names (default cp1252)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// logger builds the slog handler for the engine: stderr text at debug level
// when verbose, otherwise nil so the engine discards.
func logger() *slog.Logger {
	if !verbose {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
