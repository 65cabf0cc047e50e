package models

import "gorm.io/gorm"

// Product represents an item in the catalogue.
type Product struct {
	gorm.Model
	ProductName string  `gorm:"size:255;not null" json:"product_name"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL    string  `gorm:"size:1024" json:"image_url,omitempty"`
}
