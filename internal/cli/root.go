package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// version can be overridden at build time via:
	// go build -ldflags "-X github.com/linka-app/linka/internal/cli.version=1.2.3"
	version = "0.4.1"
	logo    = "\n" +
		"  _     _       _\n" +
		" | |   (_)_ __ | | ____ _\n" +
		" | |   | | '_ \\| |/ / _` |\n" +
		" | |___| | | | |   < (_| |\n" +
		" |_____|_|_| |_|_|\\_\\__,_|\n"
)

var rootCmd = &cobra.Command{
	Use:   "linka",
	Short: "Linka - fraud case intake and victim matching",
	Long:  color.CyanString(logo) + "\nReport a fraud case, find victims of the same scheme and coordinate a response.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(caseCmd)
	rootCmd.AddCommand(consultCmd)
	rootCmd.AddCommand(lawyersCmd)
}
