package models

import "time"

// Product is a catalogue entry.
//
// IDs are assigned sequentially starting at 1 and never reused; the cart
// relies on this to map a product to a fixed slot in its quantity array.
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null;index" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"not null;default:0" json:"price"`
	Rating      float64   `gorm:"not null;default:0" json:"rating"`
	RatingCount int       `gorm:"not null;default:0" json:"rating_count"`
	Image       string    `gorm:"size:512" json:"image"`
	Images      []string  `gorm:"serializer:json" json:"images"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}
