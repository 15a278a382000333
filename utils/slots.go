package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chadtanner/churchs-turkey-app/models"
)

// ErrSlotConfig marks a malformed store-hours or pickup-window
// configuration. It is a data-entry problem, never user input.
var ErrSlotConfig = errors.New("invalid pickup slot configuration")

// TimeSlot is one selectable pickup time. Time is the canonical 24-hour
// key used for storage and equality; Display is for presentation only.
type TimeSlot struct {
	Time    string `json:"time"`
	Display string `json:"display"`
}

// GenerateTimeSlots derives the pickup slots for a location's pickup date
// from its weekly store hours and pickup-window configuration.
//
// The first slot is open + bufferAfterOpen, slots repeat every
// slotInterval minutes, and any slot at or before close - bufferBeforeClose
// is included. A closed (or missing) weekday yields no slots.
func GenerateTimeSlots(location *models.Location) ([]TimeSlot, error) {
	if location.SlotInterval <= 0 {
		return nil, fmt.Errorf("%w: slot interval must be positive, got %d", ErrSlotConfig, location.SlotInterval)
	}

	date, err := time.Parse("2006-01-02", location.PickupDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bad pickup date %q", ErrSlotConfig, location.PickupDate)
	}

	hoursTable, err := location.Hours()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSlotConfig, err)
	}

	dayOfWeek := strings.ToLower(date.Weekday().String())
	hours, ok := hoursTable[dayOfWeek]
	if !ok || hours.Closed {
		return []TimeSlot{}, nil
	}

	openTime, err := time.Parse("15:04", hours.Open)
	if err != nil {
		return nil, fmt.Errorf("%w: bad open time %q", ErrSlotConfig, hours.Open)
	}
	closeTime, err := time.Parse("15:04", hours.Close)
	if err != nil {
		return nil, fmt.Errorf("%w: bad close time %q", ErrSlotConfig, hours.Close)
	}

	firstPickupTime := openTime.Add(time.Duration(location.BufferAfterOpen) * time.Minute)
	lastPickupTime := closeTime.Add(-time.Duration(location.BufferBeforeClose) * time.Minute)

	slots := []TimeSlot{}
	for current := firstPickupTime; !current.After(lastPickupTime); current = current.Add(time.Duration(location.SlotInterval) * time.Minute) {
		slots = append(slots, TimeSlot{
			Time:    current.Format("15:04"),
			Display: current.Format("3:04 PM"),
		})
	}

	return slots, nil
}
