package inventory

import (
	"context"
	"fmt"

	"github.com/omnistock/backend/internal/domain/catalog"
	"github.com/omnistock/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LowStockHandler handles StockBelowThreshold events and triggers
// notifications when a product's total quantity falls to or below its
// configured low stock threshold.
type LowStockHandler struct {
	logger   *zap.Logger
	notifier LowStockNotifier
}

// LowStockNotifier is the interface for delivering low stock alerts.
// Implementations can support different channels (in-app, email, etc.)
type LowStockNotifier interface {
	// Notify delivers a low stock alert
	Notify(ctx context.Context, alert LowStockAlert) error
}

// LowStockAlert represents a low stock notification payload
type LowStockAlert struct {
	ProductID     string `json:"product_id"`
	SKU           string `json:"sku"`
	Name          string `json:"name"`
	TotalQuantity int64  `json:"total_quantity"`
	Threshold     int64  `json:"threshold"`
	AlertType     string `json:"alert_type"` // "low_stock", "out_of_stock"
}

// NewLowStockHandler creates a new handler for low stock events
func NewLowStockHandler(logger *zap.Logger) *LowStockHandler {
	return &LowStockHandler{
		logger: logger,
	}
}

// WithNotifier sets the notifier for delivering alerts
func (h *LowStockHandler) WithNotifier(notifier LowStockNotifier) *LowStockHandler {
	h.notifier = notifier
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *LowStockHandler) EventTypes() []string {
	return []string{catalog.EventTypeStockBelowThreshold}
}

// Handle processes a StockBelowThresholdEvent
func (h *LowStockHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	thresholdEvent, ok := event.(*catalog.StockBelowThresholdEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", catalog.EventTypeStockBelowThreshold),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			catalog.EventTypeStockBelowThreshold, event.EventType())
	}

	h.logger.Warn("stock below threshold detected",
		zap.String("product_id", thresholdEvent.ProductID.String()),
		zap.String("sku", thresholdEvent.SKU),
		zap.Int64("total_quantity", thresholdEvent.TotalQuantity),
		zap.Int64("threshold", thresholdEvent.Threshold),
	)

	alertType := "low_stock"
	if thresholdEvent.TotalQuantity <= 0 {
		alertType = "out_of_stock"
	}

	alert := LowStockAlert{
		ProductID:     thresholdEvent.ProductID.String(),
		SKU:           thresholdEvent.SKU,
		Name:          thresholdEvent.Name,
		TotalQuantity: thresholdEvent.TotalQuantity,
		Threshold:     thresholdEvent.Threshold,
		AlertType:     alertType,
	}

	if h.notifier != nil {
		if err := h.notifier.Notify(ctx, alert); err != nil {
			h.logger.Error("failed to deliver low stock alert",
				zap.String("sku", alert.SKU),
				zap.Error(err),
			)
			// Delivery failure shouldn't fail the event handling
		}
	}

	return nil
}

// Ensure LowStockHandler implements shared.EventHandler
var _ shared.EventHandler = (*LowStockHandler)(nil)

// LoggingLowStockNotifier is a simple notifier that logs alerts.
// This is useful for development and single-node deployments.
type LoggingLowStockNotifier struct {
	logger *zap.Logger
}

// NewLoggingLowStockNotifier creates a new logging notifier
func NewLoggingLowStockNotifier(logger *zap.Logger) *LoggingLowStockNotifier {
	return &LoggingLowStockNotifier{
		logger: logger,
	}
}

// Notify logs the low stock alert
func (n *LoggingLowStockNotifier) Notify(ctx context.Context, alert LowStockAlert) error {
	n.logger.Warn("LOW STOCK ALERT",
		zap.String("type", alert.AlertType),
		zap.String("sku", alert.SKU),
		zap.String("name", alert.Name),
		zap.Int64("total_quantity", alert.TotalQuantity),
		zap.Int64("threshold", alert.Threshold),
	)
	return nil
}

// Ensure LoggingLowStockNotifier implements LowStockNotifier
var _ LowStockNotifier = (*LoggingLowStockNotifier)(nil)
