package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"mostro/internal/app"
	"mostro/internal/protocol/mostro"
	"mostro/internal/relay"
	"mostro/internal/services/orders"
)

// neworder <side> <amount> <fiatCode> <fiatAmount> <paymentMethod>
// [premium] [buyerInvoice]: encrypt and publish a new order to Mostro.
func newOrderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "neworder <side> <amount> <fiatCode> <fiatAmount> <paymentMethod> [premium] [buyerInvoice]",
		Short: "Submit a new buy or sell order to Mostro",
		Long: `Submit a new order to Mostro. An amount of 0 asks for the market price.
The premium is in percentage points and defaults to 0.`,
		Args: cobra.RangeArgs(5, 7),
		RunE: func(cmd *cobra.Command, args []string) error {
			if appCtx.Keys == nil {
				return fmt.Errorf("a secret key is required to submit orders: set %s or --seckey", app.EnvSecretKey)
			}

			premium, invoice := "", ""
			if len(args) > 5 {
				premium = args[5]
			}
			if len(args) > 6 {
				invoice = args[6]
			}
			intent, err := mostro.ParseIntent(args[0], args[1], args[2], args[3], args[4], premium, invoice)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			pool, err := relay.Connect(ctx, appCtx.Config.Relays, appCtx.Log)
			if err != nil {
				return err
			}
			defer pool.Close()

			svc := orders.New(appCtx.Signer(), pool, appCtx.Config.MostroPubKey, appCtx.Log)
			id, err := svc.SubmitNew(ctx, intent)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}
