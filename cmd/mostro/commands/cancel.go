package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"mostro/internal/app"
	"mostro/internal/relay"
	"mostro/internal/services/orders"
)

// cancel <orderId>: ask Mostro to cancel one of our pending orders.
func cancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <orderId>",
		Short: "Cancel one of your pending orders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if appCtx.Keys == nil {
				return fmt.Errorf("a secret key is required to cancel orders: set %s or --seckey", app.EnvSecretKey)
			}

			ctx := cmd.Context()
			pool, err := relay.Connect(ctx, appCtx.Config.Relays, appCtx.Log)
			if err != nil {
				return err
			}
			defer pool.Close()

			svc := orders.New(appCtx.Signer(), pool, appCtx.Config.MostroPubKey, appCtx.Log)
			id, err := svc.Cancel(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}
