package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show linkboard version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("linkboard version %v\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
