package menu

import "time"

type Category struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Name         string    `json:"name"`
	NameEn       string    `json:"name_en"`
	ImageURL     string    `json:"image_url"`
	SortOrder    int       `json:"sort_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Dish struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	CategoryID   string    `json:"category_id"`
	Name         string    `json:"name"`
	NameEn       string    `json:"name_en"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url"`
	Price        float64   `json:"price"`
	IsAvailable  bool      `json:"is_available"`
	SortOrder    int       `json:"sort_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CategoryInput struct {
	Name      string `json:"name"`
	NameEn    string `json:"name_en"`
	SortOrder int    `json:"sort_order"`
	IsActive  *bool  `json:"is_active"`
}

type DishInput struct {
	CategoryID  string  `json:"category_id"`
	Name        string  `json:"name"`
	NameEn      string  `json:"name_en"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	IsAvailable *bool   `json:"is_available"`
	SortOrder   int     `json:"sort_order"`
}

// PublicCategory is one section of the customer menu.
type PublicCategory struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	NameEn    string  `json:"name_en"`
	ImageURL  string  `json:"image_url"`
	SortOrder int     `json:"sort_order"`
	Dishes    []*Dish `json:"dishes"`
}
