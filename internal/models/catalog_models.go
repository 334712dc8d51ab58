package models

import "time"

// Category groups menu items. Deleting one deletes its items.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// MenuItem is a dish on the menu. Unavailable items stay in the admin list but not the public menu.
type MenuItem struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	Price        float64   `json:"price"`
	CategoryID   int64     `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	IsAvailable  bool      `json:"is_available"`
	IsNonVeg     bool      `json:"is_non_veg"`
	ImagePath    *string   `json:"image_path,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CategoryPayload struct {
	Name string `json:"name" form:"name" binding:"required"`
}

// CreateMenuItemPayload binds from JSON or multipart form (the image travels as a separate file part).
type CreateMenuItemPayload struct {
	Name        string  `json:"name" form:"name" binding:"required"`
	Description *string `json:"description" form:"description"`
	Price       float64 `json:"price" form:"price"`
	CategoryID  int64   `json:"category_id" form:"category_id" binding:"required"`
	IsAvailable *bool   `json:"is_available" form:"is_available"`
	IsNonVeg    *bool   `json:"is_non_veg" form:"is_non_veg"`
}

// UpdateMenuItemPayload is partial; nil fields are left untouched.
type UpdateMenuItemPayload struct {
	Name        *string  `json:"name" form:"name"`
	Description *string  `json:"description" form:"description"`
	Price       *float64 `json:"price" form:"price"`
	CategoryID  *int64   `json:"category_id" form:"category_id"`
	IsAvailable *bool    `json:"is_available" form:"is_available"`
	IsNonVeg    *bool    `json:"is_non_veg" form:"is_non_veg"`
	RemoveImage bool     `json:"remove_image" form:"remove_image"`
}

// MenuFilters narrows item listings.
type MenuFilters struct {
	CategoryID    *int64
	AvailableOnly bool
}
