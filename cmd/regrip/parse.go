package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/qraux/plaso/internal/l2tcsv"
	"github.com/qraux/plaso/pkg/winreg"
	"github.com/qraux/plaso/pkg/winreg/plugins"
)

func init() {
	rootCmd.AddCommand(newParseCmd())
}

// parseConfig is the YAML shape accepted by --config. Flags override it.
type parseConfig struct {
	Codepage string `yaml:"codepage"`
	Output   string `yaml:"output"`
}

func newParseCmd() *cobra.Command {
	var (
		output     string
		configPath string
	)
	cmd := &cobra.Command{
		Use:   "parse <hive>",
		Short: "Run the full plugin pipeline over a hive",
		Long: `The parse command detects the hive type, dispatches every key to the
built-in plugin catalog, and prints the resulting events.

Example:
  regrip parse NTUSER.DAT
  regrip parse SYSTEM --output l2tcsv > timeline.csv
  regrip parse SOFTWARE --codepage cp1251 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(args[0], output, configPath)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text, json, or l2tcsv")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML config file (codepage, output)")
	return cmd
}

func runParse(hivePath, output, configPath string) error {
	cp := codepage
	if configPath != "" {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		if cp == "" {
			cp = cfg.Codepage
		}
		if output == "text" && cfg.Output != "" {
			output = cfg.Output
		}
	}

	parser := winreg.NewParser(plugins.Default(), winreg.Options{
		Codepage: cp,
		Logger:   logger(),
	})
	ht, events, diags, err := parser.ParseFile(hivePath)
	if err != nil {
		return fmt.Errorf("failed to parse hive: %w", err)
	}

	switch {
	case jsonOut || output == "json":
		return printJSON(struct {
			HiveType string          `json:"hive_type"`
			Events   []winreg.Event  `json:"events"`
			Failures []failureReport `json:"failures,omitempty"`
		}{ht.String(), events, reportFailures(diags)})
	case output == "l2tcsv":
		w := l2tcsv.NewWriter(os.Stdout)
		if err := w.WriteHeader(); err != nil {
			return err
		}
		name := filepath.Base(hivePath)
		for _, ev := range events {
			if err := w.WriteEvent(ev, name); err != nil {
				return err
			}
		}
		return w.Flush()
	case output == "text":
		printInfo("Hive type: %s\n", ht)
		printInfo("Events: %d\n\n", len(events))
		for _, ev := range events {
			printInfo("%s  %s\n", ev.Timestamp.UTC().Format("2006-01-02 15:04:05"), ev.KeyPath)
			printInfo("  plugin: %s  offset: %d\n", ev.Plugin, ev.Offset)
			for name, value := range ev.Attributes {
				printInfo("  %s: %s\n", name, value)
			}
		}
		if diags.FailureCount() > 0 {
			printInfo("\nPlugin failures: %d\n", diags.FailureCount())
			for _, f := range diags.Failures {
				printInfo("  %s on %s: %v\n", f.Plugin, f.KeyPath, f.Err)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}

type failureReport struct {
	Plugin  string `json:"plugin"`
	KeyPath string `json:"key_path"`
	Error   string `json:"error"`
}

func reportFailures(diags *winreg.Diagnostics) []failureReport {
	out := make([]failureReport, 0, diags.FailureCount())
	for _, f := range diags.Failures {
		out = append(out, failureReport{Plugin: f.Plugin, KeyPath: f.KeyPath, Error: f.Err.Error()})
	}
	return out
}

func loadConfig(path string) (parseConfig, error) {
	var cfg parseConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
