// Package listeners wires event handlers that run off the request path.
package listeners

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/lumina/app/controllers"
	"github.com/shashiranjanraj/lumina/app/models"
	"github.com/shashiranjanraj/lumina/pkg/event"
	"github.com/shashiranjanraj/lumina/pkg/logger"
)

// Register hooks up all listeners. Call once at boot.
func Register(db *gorm.DB) {
	event.Listen(controllers.CheckoutCompleted, recordReceipt(db))
}

// recordReceipt persists a receipt after each successful capture. A write
// failure is logged, not retried: the provider remains the system of
// record for completed payments.
func recordReceipt(db *gorm.DB) event.Handler {
	return func(payload interface{}) {
		receipt, ok := payload.(*models.Receipt)
		if !ok {
			logger.Warn("listeners: unexpected checkout payload", "payload", payload)
			return
		}
		if err := db.Create(receipt).Error; err != nil {
			logger.Error("listeners: receipt write failed",
				"order_id", receipt.OrderID, "error", err)
			return
		}
		logger.Info("listeners: receipt recorded",
			"order_id", receipt.OrderID, "total", receipt.Total)
	}
}
