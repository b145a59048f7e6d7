package cli

import (
	"fmt"

	"github.com/linka-app/linka/internal/api"
	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage the logged-in account",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var accountDisplayName string
var accountBio string
var accountAvatarURL string

var accountUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.requireAuth(); err != nil {
			return err
		}
		if accountDisplayName == "" && accountBio == "" && accountAvatarURL == "" {
			return fmt.Errorf("nothing to update (set --display-name, --bio or --avatar-url)")
		}

		user, err := a.client.UpdateMe(cmd.Context(), api.UpdateUserRequest{
			DisplayName: accountDisplayName,
			Bio:         accountBio,
			AvatarURL:   accountAvatarURL,
		})
		if err != nil {
			return fmt.Errorf("update profile: %w", err)
		}
		a.session.SetUser(&user)
		fmt.Fprintf(cmd.OutOrStdout(), "Profile updated: %s\n", user.DisplayName)
		return nil
	},
}

var accountUsernameCmd = &cobra.Command{
	Use:   "username <new-username>",
	Short: "Change the account username",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.requireAuth(); err != nil {
			return err
		}
		user, err := a.client.ChangeUsername(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("change username: %w", err)
		}
		a.session.SetUser(&user)
		fmt.Fprintf(cmd.OutOrStdout(), "Username changed to %s\n", user.Username)
		return nil
	},
}

var accountCurrentPassword string
var accountNewPassword string

var accountPasswordCmd = &cobra.Command{
	Use:   "password",
	Short: "Change the account password",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.requireAuth(); err != nil {
			return err
		}
		if accountCurrentPassword == "" || accountNewPassword == "" {
			return fmt.Errorf("both --current and --new are required")
		}
		if err := a.client.ChangePassword(cmd.Context(), accountCurrentPassword, accountNewPassword); err != nil {
			return fmt.Errorf("change password: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Password changed.")
		return nil
	},
}

func init() {
	accountUpdateCmd.Flags().StringVar(&accountDisplayName, "display-name", "", "New display name")
	accountUpdateCmd.Flags().StringVar(&accountBio, "bio", "", "New bio")
	accountUpdateCmd.Flags().StringVar(&accountAvatarURL, "avatar-url", "", "New avatar URL")

	accountPasswordCmd.Flags().StringVar(&accountCurrentPassword, "current", "", "Current password")
	accountPasswordCmd.Flags().StringVar(&accountNewPassword, "new", "", "New password")

	accountCmd.AddCommand(accountUpdateCmd)
	accountCmd.AddCommand(accountUsernameCmd)
	accountCmd.AddCommand(accountPasswordCmd)
}
