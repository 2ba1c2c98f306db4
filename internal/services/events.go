package services

import (
	"encoding/json"
	"log/slog"
	"time"
)

// Routing keys of the inventory events.
const (
	EventStockAdjusted  = "stock.adjusted"
	EventProductDeleted = "product.deleted"
	EventSaleRecorded   = "sale.recorded"
)

// EventPublisher sends inventory events to a broker. rabbitmq.Client implements it.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// StockAdjustedEvent is published after a stock change is persisted.
type StockAdjustedEvent struct {
	ProductID int64     `json:"product_id"`
	Name      string    `json:"name"`
	Delta     int       `json:"delta"`
	Stock     int       `json:"stock"`
	Reason    string    `json:"reason"`
	At        time.Time `json:"at"`
}

// ProductDeletedEvent is published after a product row is removed.
type ProductDeletedEvent struct {
	ProductID int64     `json:"product_id"`
	At        time.Time `json:"at"`
}

// SaleRecordedEvent is published after a sale is stored.
type SaleRecordedEvent struct {
	SaleID string    `json:"sale_id"`
	Units  int       `json:"units"`
	Total  float64   `json:"total"`
	At     time.Time `json:"at"`
}

// publishEvent never fails the calling operation: the change is already stored.
func publishEvent(logger *slog.Logger, publisher EventPublisher, routingKey string, event any) {
	if publisher == nil {
		logger.Debug("event publisher disabled, skipping event", "event", routingKey)
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		logger.Error("failed to marshal event", "event", routingKey, "error", err)
		return
	}
	if err := publisher.Publish(routingKey, body); err != nil {
		logger.Warn("failed to publish event", "event", routingKey, "error", err)
		return
	}
	logger.Debug("published event", "event", routingKey)
}
