package cli

import (
	"bufio"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/linka-app/linka/internal/api"
)

var loginUsername string
var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session",
	RunE:  runLogin,
}

var registerUsername string
var registerDisplayName string
var registerPassword string
var registerBio string

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		a.session.Logout()
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.requireAuth(); err != nil {
			return err
		}
		if err := a.session.RefreshUser(cmd.Context(), a.client); err != nil {
			return fmt.Errorf("session expired, log in again: %w", err)
		}
		user := a.session.User()
		fmt.Fprintf(cmd.OutOrStdout(), "Username:     %s\n", user.Username)
		fmt.Fprintf(cmd.OutOrStdout(), "Display name: %s\n", user.DisplayName)
		if user.Bio != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Bio:          %s\n", user.Bio)
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username (prompted if omitted)")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prompted if omitted)")

	registerCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "Username (prompted if omitted)")
	registerCmd.Flags().StringVar(&registerDisplayName, "display-name", "", "Display name (prompted if omitted)")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "Password (prompted if omitted)")
	registerCmd.Flags().StringVar(&registerBio, "bio", "", "Profile bio")
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	reader := bufio.NewReader(cmd.InOrStdin())
	username := loginUsername
	if username == "" {
		if username, err = promptLine(reader, cmd.OutOrStdout(), "Username: "); err != nil {
			return err
		}
	}
	password := loginPassword
	if password == "" {
		if password, err = promptLine(reader, cmd.OutOrStdout(), "Password: "); err != nil {
			return err
		}
	}

	resp, err := a.client.Login(cmd.Context(), username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if err := a.session.Authenticate(cmd.Context(), resp.AccessToken, a.client); err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	user := a.session.User()
	fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Logged in as %s.", user.Username))
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	reader := bufio.NewReader(cmd.InOrStdin())
	username := registerUsername
	if username == "" {
		if username, err = promptLine(reader, cmd.OutOrStdout(), "Username: "); err != nil {
			return err
		}
	}
	displayName := registerDisplayName
	if displayName == "" {
		if displayName, err = promptLine(reader, cmd.OutOrStdout(), "Display name: "); err != nil {
			return err
		}
	}
	password := registerPassword
	if password == "" {
		if password, err = promptLine(reader, cmd.OutOrStdout(), "Password: "); err != nil {
			return err
		}
	}

	_, err = a.client.Register(cmd.Context(), api.RegisterRequest{
		Username:    username,
		DisplayName: displayName,
		Password:    password,
		Bio:         registerBio,
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	resp, err := a.client.Login(cmd.Context(), username, password)
	if err != nil {
		return fmt.Errorf("account created but login failed: %w", err)
	}
	if err := a.session.Authenticate(cmd.Context(), resp.AccessToken, a.client); err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Account created. Logged in as %s.", username))
	return nil
}
