package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rosterhq/roster/internal/cryptox"
	"github.com/rosterhq/roster/internal/model"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage login users",
		Long:  "Create and inspect the accounts that can sign in to the roster API.",
	}

	cmd.AddCommand(newUserCreateCmd())
	cmd.AddCommand(newUserLoginsCmd())

	return cmd
}

// ---------- user create ----------

func newUserCreateCmd() *cobra.Command {
	var (
		username string
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new login user",
		Example: `  roster user create --username admin --email admin@example.com --password secret
  roster user create --username admin --email admin@example.com  # prompts for password`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUserCreate(username, email, password)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Login name (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted if omitted)")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("email")

	return cmd
}

func runUserCreate(username, email, password string) error {
	if !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email address: %q", email)
	}

	// Prompt for password if not provided
	if password == "" {
		fmt.Print("Password: ")
		pwBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Println()
		password = string(pwBytes)

		fmt.Print("Confirm password: ")
		confirmBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		fmt.Println()

		if password != string(confirmBytes) {
			return fmt.Errorf("passwords do not match")
		}
	}

	if err := cryptox.ValidatePassword(password); err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	st, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	u := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := st.CreateUser(context.Background(), u); err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Printf("Created user %q (id %d)\n", username, u.ID)
	return nil
}

// ---------- user logins ----------

func newUserLoginsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "logins <username>",
		Short: "Show a user's login history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUserLogins(args[0], jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func runUserLogins(username string, jsonOutput bool) error {
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	u, err := st.GetUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("look up user %q: %w", username, err)
	}

	events, err := st.ListLoginEvents(ctx, u.ID)
	if err != nil {
		return fmt.Errorf("list logins: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(events)
	}

	if len(events) == 0 {
		fmt.Printf("No logins recorded for %q.\n", username)
		return nil
	}

	fmt.Printf("%-22s %-22s %-12s\n", "LOGIN", "LOGOUT", "DURATION")
	fmt.Printf("%-22s %-22s %-12s\n", "-----", "------", "--------")
	for _, ev := range events {
		logout := "-"
		duration := "-"
		if ev.LogoutTime != nil {
			logout = ev.LogoutTime.Format("2006-01-02 15:04:05")
		}
		if ev.SessionDuration != nil {
			duration = fmt.Sprintf("%.0fs", *ev.SessionDuration)
		}
		fmt.Printf("%-22s %-22s %-12s\n", ev.LoginTime.Format("2006-01-02 15:04:05"), logout, duration)
	}

	return nil
}
