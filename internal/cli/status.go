package cli

import (
	"fmt"
	"os"

	"github.com/linka-app/linka/internal/config"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		printHeader("🏷️ Linka Version")
		fmt.Printf("Version: %s\n", version)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show client status",
	Run: func(cmd *cobra.Command, args []string) {
		printHeader("📊 Linka Status")
		fmt.Printf("Version: %s\n", version)

		configPath, err := config.ConfigPath()
		if err == nil {
			if _, statErr := os.Stat(configPath); statErr == nil {
				fmt.Println("Config:  ✓ Found (" + configPath + ")")
			} else {
				fmt.Println("Config:  ✗ Not found (defaults in effect)")
			}
		}

		cfg, err := config.Load()
		if err != nil {
			fmt.Println("Config:  ? Unable to load config")
			return
		}
		fmt.Printf("Backend: %s\n", cfg.Backend.BaseURL)
		fmt.Printf("AI:      %s\n", cfg.Backend.AIBaseURL)

		a, err := newApp()
		if err != nil {
			fmt.Println("Session: ? Unable to open local state")
			return
		}
		defer a.Close()
		if a.session.Authenticated() {
			if user := a.session.User(); user != nil {
				fmt.Printf("Session: ✓ Logged in as %s\n", user.Username)
			} else {
				fmt.Println("Session: ✓ Token present")
			}
		} else {
			fmt.Println("Session: ✗ Not logged in")
		}
	},
}
