package review

import "time"

type Review struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	AuthorName   string    `json:"author_name"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateInput struct {
	AuthorName string `json:"author_name"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

// Listing is the public reviews payload, newest first, with the average
// rating rounded to one decimal.
type Listing struct {
	Rating      float64  `json:"rating"`
	RatingCount int      `json:"rating_count"`
	Reviews     []Review `json:"reviews"`
}
