package commands

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"courier/internal/app"
	"courier/internal/util/logging"
)

var (
	serverAddr string
	heartbeat  time.Duration
	logLevel   string

	wire *app.Wire
)

// Execute runs the courier CLI.
func Execute() error {
	root := &cobra.Command{
		Use:   "courier [client-id]",
		Short: "Store-and-forward encrypted messaging client",
		Long: `courier is an interactive client for the courier relay.

It generates a fresh identity on every start: an Ed25519 pair that signs
outgoing messages and an X25519 pair that derives one shared key per peer.
Exchange agreement keys with a peer out of band (the banner prints yours),
then send and receive sealed messages through the relay.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := logging.Init(logLevel); err != nil {
				return err
			}

			clientID := ""
			if len(args) == 1 {
				clientID = args[0]
			}
			if clientID == "" {
				clientID = "client-" + uuid.NewString()[:8]
			}

			w, err := app.NewWire(app.Config{
				ClientID:   clientID,
				ServerAddr: serverAddr,
				Heartbeat:  heartbeat,
			})
			if err != nil {
				return err
			}
			wire = w
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			defer logging.Sync()
			return runSession(cmd.Context(), wire)
		},
	}

	root.PersistentFlags().StringVar(&serverAddr, "server", "127.0.0.1:8080", "relay TCP address")
	root.PersistentFlags().DurationVar(&heartbeat, "heartbeat", 30*time.Second, "background heartbeat period (0 disables)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level for client diagnostics")

	if err := root.Execute(); err != nil {
		fmt.Println("error:", err)
		return err
	}
	return nil
}
