package main

import (
	"fmt"

	"fittrack/internal/session"

	"github.com/spf13/cobra"
)

func newSignupCmd() *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.bridge.SignUp(cmd.Context(), name, email, password); err != nil {
				return err
			}
			cli.facade.RefreshData()
			_, userID := cli.bridge.State()
			fmt.Printf("Signed up and logged in as %s (%s)\n", email, userID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (min 8 characters)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newLoginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in; workout history is pulled from the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.bridge.SignIn(cmd.Context(), email, password); err != nil {
				return err
			}
			cli.facade.RefreshData()
			_, userID := cli.bridge.State()
			fmt.Printf("Logged in as %s (%s); %d workout(s) available\n",
				email, userID, len(cli.facade.WorkoutLogs()))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out; local guest data is kept",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.bridge.SignOut(cmd.Context()); err != nil {
				return err
			}
			cli.facade.RefreshData()
			fmt.Println("Logged out. Back on the local guest profile.")
			return nil
		},
	}
}

func newGuestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guest",
		Short: "Use fittrack without an account (device-only data)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if state, _ := cli.bridge.State(); state == session.StateAuthenticated {
				return fmt.Errorf("already signed in; log out first to use guest mode")
			}
			if err := cli.bridge.EnterGuestMode(); err != nil {
				return err
			}
			fmt.Println("Guest mode enabled. Data stays on this device until you sign in.")
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session and sync state",
		RunE: func(cmd *cobra.Command, args []string) error {
			state, userID := cli.bridge.State()
			fmt.Printf("Session:   %s\n", state)
			if state == session.StateAuthenticated {
				fmt.Printf("User:      %s\n", userID)
			}
			fmt.Printf("Scope:     %s\n", cli.local.ActiveScope())
			fmt.Printf("Guest mode: %v\n", cli.bridge.GuestMode())
			fmt.Printf("Syncing:   %v\n", cli.facade.Syncing())
			fmt.Printf("Workouts:  %d\n", len(cli.facade.WorkoutLogs()))
			return nil
		},
	}
}

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Pull the latest data from the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if state, _ := cli.bridge.State(); state != session.StateAuthenticated {
				fmt.Println("Not signed in; guest data never syncs.")
				return nil
			}
			if err := cli.facade.SyncData(cmd.Context()); err != nil {
				return fmt.Errorf("sync failed, local data is untouched: %w", err)
			}
			fmt.Printf("Sync complete; %d workout(s) stored locally.\n", len(cli.facade.WorkoutLogs()))
			return nil
		},
	}
}
