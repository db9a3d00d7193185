package commands

import (
	"github.com/spf13/cobra"

	"mostro/internal/app"
)

var (
	mostroKey string
	secretKey string
	relayList string

	appCtx *app.App
)

func Execute() error {
	root := &cobra.Command{
		Use:          "mostro",
		Short:        "CLI client for the Mostro p2p trading daemon",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Load(mostroKey, secretKey, relayList)
			if err != nil {
				return err
			}
			appCtx, err = app.New(cfg)
			return err
		},
	}

	root.PersistentFlags().StringVar(&mostroKey, "mostro", "", "Mostro pubkey, npub or hex (env "+app.EnvMostroPubKey+")")
	root.PersistentFlags().StringVar(&secretKey, "seckey", "", "your secret key, nsec or hex (env "+app.EnvSecretKey+")")
	root.PersistentFlags().StringVar(&relayList, "relays", "", "comma-separated relay URLs (env "+app.EnvRelays+")")

	root.AddCommand(listOrdersCmd(), newOrderCmd(), cancelCmd())
	return root.Execute()
}
