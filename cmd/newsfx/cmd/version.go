package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the newsfx CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("newsfx version %s\n", version)
		fmt.Println("A news-sentiment FX trading engine")
		fmt.Println("https://github.com/newsfx/trader")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
