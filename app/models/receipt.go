package models

import "time"

// Receipt records a completed checkout for later reconciliation against
// the payment provider's reports.
type Receipt struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   string    `gorm:"size:64;uniqueIndex;not null" json:"order_id"`
	PayerID   string    `gorm:"size:64" json:"payer_id"`
	Total     float64   `gorm:"not null" json:"total"`
	Currency  string    `gorm:"size:8;not null" json:"currency"`
	Items     string    `gorm:"type:text" json:"items"` // JSON snapshot of the purchased line items
	CreatedAt time.Time `json:"created_at"`
}
