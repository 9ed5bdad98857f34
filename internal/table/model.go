package table

import "time"

type Table struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	TableNumber  string    `json:"table_number"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type UpdateInput struct {
	TableNumber *string `json:"table_number"`
	IsActive    *bool   `json:"is_active"`
}

// QRLink is a printable entry point to the customer menu.
type QRLink struct {
	TableID     string `json:"table_id,omitempty"`
	TableNumber string `json:"table_number,omitempty"`
	MenuURL     string `json:"menu_url"`
	QRImageURL  string `json:"qr_image_url"`
}

type QRLinks struct {
	Restaurant QRLink   `json:"restaurant"`
	Tables     []QRLink `json:"tables"`
}
