package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/chadtanner/churchs-turkey-app/models"
	"github.com/chadtanner/churchs-turkey-app/storage"

	"gorm.io/gorm/clause"
)

type seedLocation struct {
	LocationID        string            `json:"locationId"`
	Name              string            `json:"name"`
	Street            string            `json:"street"`
	City              string            `json:"city"`
	State             string            `json:"state"`
	ZipCode           string            `json:"zipCode"`
	Latitude          float64           `json:"latitude"`
	Longitude         float64           `json:"longitude"`
	Timezone          string            `json:"timezone"`
	StoreHours        models.StoreHours `json:"storeHours"`
	BufferAfterOpen   int               `json:"bufferAfterOpen"`
	BufferBeforeClose int               `json:"bufferBeforeClose"`
	SlotInterval      int               `json:"slotInterval"`
	PickupDate        string            `json:"pickupDate"`
	AvailableUnits    int               `json:"availableUnits"`
	PerOrderLimit     int               `json:"perOrderLimit"`
	UnitPrice         float64           `json:"unitPrice"`
}

type seedFile struct {
	Locations []seedLocation `json:"locations"`
}

func main() {
	path := "seed-data/seed-data-locations.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Error reading seed file %s: %v", path, err)
	}

	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		log.Fatalf("Error parsing seed file: %v", err)
	}

	db := storage.InitializeDB()

	count := 0
	for _, entry := range seed.Locations {
		location := models.Location{
			LocationID:        entry.LocationID,
			Name:              entry.Name,
			Street:            entry.Street,
			City:              entry.City,
			State:             entry.State,
			Zip:               entry.ZipCode,
			Lat:               entry.Latitude,
			Lng:               entry.Longitude,
			Timezone:          entry.Timezone,
			BufferAfterOpen:   entry.BufferAfterOpen,
			BufferBeforeClose: entry.BufferBeforeClose,
			SlotInterval:      entry.SlotInterval,
			PickupDate:        entry.PickupDate,
			AvailableUnits:    entry.AvailableUnits,
			PerOrderLimit:     entry.PerOrderLimit,
			UnitPrice:         entry.UnitPrice,
			TotalCapacity:     entry.AvailableUnits,
			UnitsReserved:     0,
		}
		if err := location.SetHours(entry.StoreHours); err != nil {
			log.Fatalf("Error encoding store hours for %s: %v", entry.LocationID, err)
		}

		// Re-running the seed refreshes location details without touching
		// inventory that live reservations have already consumed.
		if err := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "location_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "street", "city", "state", "zip", "lat", "lng", "timezone",
				"store_hours", "buffer_after_open", "buffer_before_close",
				"slot_interval", "pickup_date", "per_order_limit", "unit_price",
			}),
		}).Create(&location).Error; err != nil {
			log.Fatalf("Error seeding location %s: %v", entry.LocationID, err)
		}
		count++
	}

	var config models.SystemConfig
	db.FirstOrCreate(&config, models.SystemConfig{
		FromEmail:    "reservations@churchstexaschicken.com",
		FromName:     "Church's Texas Chicken",
		ReplyToEmail: "support@churchstexaschicken.com",
		SupportEmail: "support@churchstexaschicken.com",
		SupportPhone: "1-800-CHURCHS",
		UpdatedBy:    "seed-script",
	})

	fmt.Printf("Seeded %d locations\n", count)
}
