package models

import (
	"time"

	"gorm.io/gorm"
)

type Reservation struct {
	gorm.Model
	ConfirmationID string `json:"confirmationId" gorm:"uniqueIndex;not null"`
	LocationID     string `json:"locationId" gorm:"index;not null"`

	// Location snapshot at creation time, so the confirmation survives
	// later edits to the location record.
	LocationName    string `json:"locationName"`
	LocationAddress string `json:"locationAddress"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" gorm:"index"`
	Phone     string `json:"phone"`

	Quantity       int       `json:"quantity" gorm:"not null"`
	PickupDate     string    `json:"pickupDate" gorm:"type:varchar(10)"`
	PickupTime     string    `json:"pickupTime" gorm:"type:varchar(5)"`
	PickupDateTime time.Time `json:"pickupDateTime"`
	TotalPrice     float64   `json:"totalPrice"`

	// confirmed, cancelled, completed, no-show. This service only ever
	// writes confirmed; the other transitions are administrative.
	Status string `json:"status" gorm:"type:varchar(20);default:'confirmed';index"`

	EmailSent   bool       `json:"emailSent" gorm:"default:false"`
	EmailSentAt *time.Time `json:"emailSentAt"`

	Source    string `json:"source" gorm:"type:varchar(20);default:'web'"`
	UserAgent string `json:"userAgent"`
	IPAddress string `json:"ipAddress"`
}

// CustomerName returns the customer's display name for emails and exports.
func (r *Reservation) CustomerName() string {
	return r.FirstName + " " + r.LastName
}
