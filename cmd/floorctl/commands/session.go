package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/restaurant-floor/internal/app"
)

var (
	// Login flags
	email    string
	password string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and persist the session",
	Long: `Sign in as a staff member. The session is kept in the secure store
(Redis when REDIS_ADDR is set), so later commands on this terminal reuse it.

Examples:
  floorctl login --email olivia@bistro.test --password secret123`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if email == "" || password == "" {
			return errors.New("--email and --password are required")
		}
		if cfg.RedisAddr == "" {
			log.Warn("no REDIS_ADDR, the session ends with this command")
		}

		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if err := a.Session.SignIn(ctx, email, password); err != nil {
				return err
			}
			user, _ := a.Session.User()
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (%s)\n", user.Email, user.RestaurantID)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the persisted session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if err := a.Session.SignOut(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			snap := a.Session.Snapshot()
			if snap.User == nil {
				fmt.Fprintln(cmd.OutOrStdout(), snap.State.String())
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s <%s>\nrestaurant %s\n",
				snap.User.FirstName, snap.User.LastName, snap.User.Email, snap.ScopeID)
			return nil
		})
	},
}

func init() {
	loginCmd.Flags().StringVar(&email, "email", "", "Staff email")
	loginCmd.Flags().StringVar(&password, "password", "", "Staff password")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
