package cli

import (
	"errors"

	"inventory/internal/events"
	"inventory/pkg/rabbitmq"

	"github.com/spf13/cobra"
	"github.com/streadway/amqp"
)

// consumeCmd logs catalog events from RabbitMQ
var consumeCmd = &cobra.Command{
	Use:   "consume-events",
	Short: "Log catalog events published to RabbitMQ",
	Long: `Consume the catalog event queue and log each event until interrupted.
Messages that cannot be decoded are logged and dropped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime()
		if err != nil {
			return err
		}
		if !rt.cfg.RabbitMQ.Enabled() {
			return errors.New("RABBITMQ_URL is required")
		}

		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: rt.cfg.RabbitMQ.URL})
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, stop := signalContext(cmd.Context())
		defer stop()

		rt.log.Info(ctx, "consuming catalog events")
		return client.Consume(ctx, func(msg amqp.Delivery) error {
			event, err := events.Decode(msg.Body)
			if err != nil {
				rt.log.Warn(rt.log.WithField(ctx, "delivery_tag", msg.DeliveryTag), "dropping malformed event", err)
				return err
			}
			rt.log.Info(rt.log.WithFields(ctx, map[string]any{
				"event":     string(event.Type),
				"entity_id": event.EntityID,
				"name":      event.Name,
				"actor_id":  event.ActorID,
			}), "catalog event")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(consumeCmd)
}
