package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/restaurant-floor/internal/app"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/views"
)

var (
	// Watch flags
	interval time.Duration
)

var waitlistCmd = &cobra.Command{
	Use:   "waitlist",
	Short: "Waitlist tools",
}

var waitlistWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show the live waitlist board",
	Long: `Load the waitlist once and redraw the board on every tick with each
party's elapsed wait. Parties waiting longer than 15 minutes are flagged.

Examples:
  floorctl waitlist watch
  floorctl waitlist watch --interval 30s`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			actor, err := a.Actor()
			if err != nil {
				return err
			}
			if _, err := a.Stores.Waitlist.Fetch(ctx, actor.RestaurantID, models.WaitlistFilter{}); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			board := views.WaitBoard{
				Source:   a.Stores.Waitlist.Items,
				Interval: interval,
				Render: func(rows []views.WaitRow) {
					fmt.Fprintf(out, "\n%s\n", time.Now().Format("15:04"))
					w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
					fmt.Fprintln(w, "PARTY\tSIZE\tSTATUS\tWAIT\t")
					for _, r := range rows {
						flag := ""
						if r.Urgent {
							flag = "!"
						}
						fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", r.Name, r.PartySize, r.Status, r.Label, flag)
					}
					_ = w.Flush()
				},
			}

			err = board.Run(ctx)
			if ctx.Err() != nil {
				return nil
			}
			return err
		})
	},
}

func init() {
	waitlistWatchCmd.Flags().DurationVar(&interval, "interval", views.DefaultRefresh, "Redraw interval")

	waitlistCmd.AddCommand(waitlistWatchCmd)
	rootCmd.AddCommand(waitlistCmd)
}
