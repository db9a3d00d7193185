package commands

import (
	"sort"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mostro/internal/relay"
	"mostro/internal/render"
	"mostro/internal/services/orders"
)

// listorders: fetch Mostro's pending orders and print them as a table.
func listOrdersCmd() *cobra.Command {
	var sinceHours int
	cmd := &cobra.Command{
		Use:   "listorders",
		Short: "Request and list pending orders from the Mostro pubkey",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pool, err := relay.Connect(ctx, appCtx.Config.Relays, appCtx.Log)
			if err != nil {
				// Partial relay availability is the normal case; a listing
				// with zero reachable relays degrades to an empty table.
				appCtx.Log.Warn("no relays reachable, order list is empty", zap.Error(err))
				render.Orders(cmd.OutOrStdout(), nil)
				return nil
			}
			defer pool.Close()

			svc := orders.New(appCtx.Signer(), pool, appCtx.Config.MostroPubKey, appCtx.Log)
			list, err := svc.ListPending(ctx, time.Duration(sinceHours)*time.Hour)
			if err != nil {
				return err
			}

			// Relays return events in no particular order.
			sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt < list[j].CreatedAt })
			render.Orders(cmd.OutOrStdout(), list)
			return nil
		},
	}
	cmd.Flags().IntVar(&sinceHours, "since", 48, "recency window in hours")
	return cmd
}
