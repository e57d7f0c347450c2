package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"fintrack/internal/amqp"
	"fintrack/internal/log"
)

func newEventsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Follow change events published by the server until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.cfg.AMQPEnabled() {
				return errors.New("AMQP_URL is not set")
			}

			client, err := amqp.NewClient(a.cfg.AMQPURL, a.cfg.AMQPExchange, a.cfg.AMQPQueue)
			if err != nil {
				return err
			}
			defer client.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a.logger.Info("Following change events", "queue", a.cfg.AMQPQueue)
			err = client.ConsumeChanges(ctx, func(e *amqp.ChangeEvent) error {
				_, werr := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n",
					e.At.Format(time.RFC3339), e.Collection, e.Action, e.ID)
				return werr
			})
			if errors.Is(err, context.Canceled) {
				a.logger.Info("Stopped following change events", log.FieldOperation, log.OpShutdown)
				return nil
			}
			return err
		},
	}
}
