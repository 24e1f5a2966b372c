package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qraux/plaso/pkg/winreg"
)

func init() {
	rootCmd.AddCommand(newDetectCmd())
}

func newDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <hive>",
		Short: "Classify a hive by its diagnostic key paths",
		Long: `The detect command probes the hive for the diagnostic key paths of each
well-known hive type and prints the first match, or UNKNOWN.

Example:
  regrip detect NTUSER.DAT`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(args[0])
		},
	}
}

func runDetect(hivePath string) error {
	f, err := winreg.Open(hivePath, winreg.Options{Codepage: codepage})
	if err != nil {
		return fmt.Errorf("failed to open hive: %w", err)
	}
	defer f.Close()

	ht := winreg.DetectHiveType(f)
	if jsonOut {
		return printJSON(map[string]string{"hive": hivePath, "type": ht.String()})
	}
	printInfo("%s\n", ht)
	return nil
}
