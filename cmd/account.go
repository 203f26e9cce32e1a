package cmd

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage the account used by this machine",
}

var accountLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to Media Cuts Studio",
	Long: `Log in with an existing email and password. The session is stored in the
system keyring and the account becomes the active one.

Examples:
  mediacuts account login
  mediacuts account login --email you@example.com`,
	Run: runAccountLogin,
}

var accountRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new login",
	Run:   runAccountRegister,
}

var accountLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the active account and its session",
	Run: func(cmd *cobra.Command, args []string) {
		if err := ctrl.Logout(cmd.Context()); err != nil {
			fmt.Printf("Logout failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Logged out")
	},
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show saved accounts",
	Run: func(cmd *cobra.Command, args []string) {
		accounts, err := ctrl.GetAccounts(cmd.Context())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if len(accounts) == 0 {
			fmt.Println("No accounts. Log in using 'mediacuts account login'")
			return
		}
		active, _ := ctrl.ActiveAccount(cmd.Context())
		for _, acc := range accounts {
			marker := " "
			if acc.StoreKey() == active.StoreKey() {
				marker = "*"
			}
			if acc.APIURL != "" {
				fmt.Printf("%s %s (%s)\n", marker, acc.Email, acc.APIURL)
			} else {
				fmt.Printf("%s %s\n", marker, acc.Email)
			}
		}
	},
}

var accountPasswordCmd = &cobra.Command{
	Use:   "change-password",
	Short: "Change the active account's password",
	Run:   runChangePassword,
}

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountLoginCmd)
	accountCmd.AddCommand(accountRegisterCmd)
	accountCmd.AddCommand(accountLogoutCmd)
	accountCmd.AddCommand(accountListCmd)
	accountCmd.AddCommand(accountPasswordCmd)

	accountLoginCmd.Flags().String("email", "", "Account email")
	accountRegisterCmd.Flags().String("email", "", "Account email")
}

func runAccountLogin(cmd *cobra.Command, args []string) {
	email, password := promptCredentials(cmd)
	if err := ctrl.Login(cmd.Context(), email, password, viper.GetString("api_url")); err != nil {
		fmt.Printf("Login failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Logged in as %s\n", email)
}

func runAccountRegister(cmd *cobra.Command, args []string) {
	email, password := promptCredentials(cmd)
	if err := ctrl.Register(cmd.Context(), email, password, viper.GetString("api_url")); err != nil {
		fmt.Printf("Registration failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Account created for %s\n", email)
}

func runChangePassword(cmd *cobra.Command, args []string) {
	current := promptPassword("Current password: ")
	updated := promptPassword("New password: ")
	confirm := promptPassword("Confirm new password: ")
	if updated != confirm {
		fmt.Println("Passwords do not match")
		os.Exit(1)
	}
	if err := ctrl.ChangePassword(cmd.Context(), current, updated); err != nil {
		fmt.Printf("Password change failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Password changed")
}

func promptCredentials(cmd *cobra.Command) (string, string) {
	email, _ := cmd.Flags().GetString("email")
	if email == "" {
		fmt.Print("Email: ")
		fmt.Scanln(&email)
	}
	email = strings.TrimSpace(email)
	if email == "" {
		fmt.Println("Email is required")
		os.Exit(1)
	}
	return email, promptPassword("Password: ")
}

func promptPassword(prompt string) string {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Printf("Failed to read password: %v\n", err)
		os.Exit(1)
	}
	return string(raw)
}
