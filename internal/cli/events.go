package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"tienda/internal/config"
	"tienda/internal/services"
	"tienda/pkg/rabbitmq"

	"github.com/spf13/cobra"
	amqp "github.com/streadway/amqp"
)

func newEventsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Tail inventory events from RabbitMQ",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			if cfg.RabbitMQURL == "" {
				return errors.New("RABBITMQ_URL is not set")
			}
			logger := config.NewLogger(cfg.LogLevel, cmd.ErrOrStderr())

			client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, logger)
			if err != nil {
				return err
			}
			defer client.Close()

			out := cmd.OutOrStdout()
			if err := client.ConsumeInventoryEvents(func(msg amqp.Delivery) error {
				return printEvent(out, msg.RoutingKey, msg.Body)
			}); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()
			return nil
		},
	}
}

// printEvent writes one inventory event as a console line.
func printEvent(w io.Writer, routingKey string, body []byte) error {
	switch routingKey {
	case services.EventStockAdjusted:
		var e services.StockAdjustedEvent
		if err := json.Unmarshal(body, &e); err != nil {
			return fmt.Errorf("decoding %s: %w", routingKey, err)
		}
		_, err := fmt.Fprint(w, okLine("%s  %s %+d -> %d (%s)", dimStyle.Render(routingKey), e.Name, e.Delta, e.Stock, e.Reason))
		return err
	case services.EventProductDeleted:
		var e services.ProductDeletedEvent
		if err := json.Unmarshal(body, &e); err != nil {
			return fmt.Errorf("decoding %s: %w", routingKey, err)
		}
		_, err := fmt.Fprint(w, warnLine("%s  product %d", dimStyle.Render(routingKey), e.ProductID))
		return err
	case services.EventSaleRecorded:
		var e services.SaleRecordedEvent
		if err := json.Unmarshal(body, &e); err != nil {
			return fmt.Errorf("decoding %s: %w", routingKey, err)
		}
		_, err := fmt.Fprint(w, okLine("%s  %d units, %s", dimStyle.Render(routingKey), e.Units, formatMoney(e.Total)))
		return err
	default:
		_, err := fmt.Fprint(w, warnLine("%s  %s", dimStyle.Render(routingKey), string(body)))
		return err
	}
}
