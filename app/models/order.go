package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultOrderStatus is assigned to every newly placed order.
const DefaultOrderStatus = "in progress"

// Order is one product line placed by a user.
type Order struct {
	gorm.Model
	Quantity  int       `gorm:"not null" json:"quantity"`
	OrderDate time.Time `gorm:"not null" json:"order_date"`
	Status    string    `gorm:"size:50;not null;default:'in progress'" json:"status"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`

	User    User    `json:"user,omitempty"`
	Product Product `json:"product,omitempty"`
}

// BeforeCreate fills the defaults for fields the caller left empty.
func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.OrderDate.IsZero() {
		o.OrderDate = time.Now()
	}
	if o.Status == "" {
		o.Status = DefaultOrderStatus
	}
	return nil
}
