package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tagespoet",
	RunE: func(cmd *cobra.Command, args []string) error {
		if isJSON() {
			return printJSON(cmd.OutOrStdout(), map[string]string{
				"version": GetVersion(),
				"go":      runtime.Version(),
			})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "tagespoet version %s\n", GetVersion())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
