package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DayHours is one weekday entry in a location's operating-hours table.
type DayHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

// StoreHours maps lowercase weekday names ("monday".."sunday") to hours.
type StoreHours map[string]DayHours

type Location struct {
	gorm.Model
	LocationID string  `json:"locationId" gorm:"uniqueIndex;not null"`
	Name       string  `json:"name"`
	Street     string  `json:"street"`
	City       string  `json:"city" gorm:"index"`
	State      string  `json:"state" gorm:"type:varchar(2);index"`
	Zip        string  `json:"zipCode" gorm:"type:varchar(10)"`
	Lat        float64 `json:"latitude"`
	Lng        float64 `json:"longitude"`
	Timezone   string  `json:"timezone"`

	StoreHours datatypes.JSON `json:"storeHours" gorm:"type:jsonb"`

	// Pickup window: minutes after open before the first slot, minutes
	// before close after which no slot is offered, and slot spacing.
	BufferAfterOpen   int `json:"bufferAfterOpen" gorm:"default:15"`
	BufferBeforeClose int `json:"bufferBeforeClose" gorm:"default:30"`
	SlotInterval      int `json:"slotInterval" gorm:"default:30"`

	PickupDate     string  `json:"pickupDate" gorm:"type:varchar(10)"`
	AvailableUnits int     `json:"availableUnits"`
	PerOrderLimit  int     `json:"perOrderLimit" gorm:"default:4"`
	UnitPrice      float64 `json:"unitPrice"`

	IsActive            *bool      `json:"isActive" gorm:"default:true;index"`
	ReservationsEnabled *bool      `json:"reservationsEnabled" gorm:"default:true"`
	DisabledReason      string     `json:"disabledReason"`
	DisabledAt          *time.Time `json:"disabledAt"`

	// Capacity metadata. Invariant: AvailableUnits + UnitsReserved == TotalCapacity.
	TotalCapacity int `json:"totalCapacity"`
	UnitsReserved int `json:"unitsReserved"`
}

// Hours decodes the weekly operating-hours table stored as JSON.
func (l *Location) Hours() (StoreHours, error) {
	if len(l.StoreHours) == 0 {
		return StoreHours{}, nil
	}
	var hours StoreHours
	if err := json.Unmarshal(l.StoreHours, &hours); err != nil {
		return nil, err
	}
	return hours, nil
}

// SetHours encodes and stores the weekly operating-hours table.
func (l *Location) SetHours(hours StoreHours) error {
	raw, err := json.Marshal(hours)
	if err != nil {
		return err
	}
	l.StoreHours = datatypes.JSON(raw)
	return nil
}

// FullAddress returns the single-line postal address used on reservation
// snapshots and confirmation emails.
func (l *Location) FullAddress() string {
	return fmt.Sprintf("%s, %s, %s %s", l.Street, l.City, l.State, l.Zip)
}

// Custom JSON marshaling to expose StoreHours as a structured object
// instead of a raw JSON byte blob.
func (l *Location) MarshalJSON() ([]byte, error) {
	type Alias Location
	aux := &struct {
		StoreHours StoreHours `json:"storeHours"`
		*Alias
	}{
		StoreHours: StoreHours{},
		Alias:      (*Alias)(l),
	}

	if hours, err := l.Hours(); err == nil {
		aux.StoreHours = hours
	}

	return json.Marshal(aux)
}
