package routes

import (
	"context"
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/chadtanner/churchs-turkey-app/models"
	"github.com/chadtanner/churchs-turkey-app/services"
	"github.com/chadtanner/churchs-turkey-app/storage"
)

var bgContext = context.Background()

const locationSnapshotTTL = 30 * time.Second

// locationSnapshot returns the location set for read paths, going through
// Redis when it is configured. Snapshots may be stale relative to
// concurrent commits; that is fine for search and dashboards, which never
// write. activeOnly restricts the set to active locations accepting
// reservations with stock remaining.
func locationSnapshot(activeOnly bool) ([]models.Location, error) {
	cacheKey := "locations:all"
	if activeOnly {
		cacheKey = "locations:active"
	}

	if storage.Redis != nil {
		if cached, err := storage.Redis.Get(bgContext, cacheKey).Bytes(); err == nil {
			var locations []models.Location
			if err := json.Unmarshal(cached, &locations); err == nil {
				return locations, nil
			}
		}
	}

	var locations []models.Location
	query := storage.DB.Order("location_id")
	if activeOnly {
		query = query.Where("is_active = ? AND reservations_enabled = ? AND available_units > 0", true, true)
	}
	if err := query.Find(&locations).Error; err != nil {
		return nil, err
	}

	if storage.Redis != nil {
		if encoded, err := json.Marshal(locations); err == nil {
			storage.Redis.Set(bgContext, cacheKey, encoded, locationSnapshotTTL)
		}
	}

	return locations, nil
}

// invalidateLocationSnapshots drops cached snapshots after a write so
// admins see their own edits promptly.
func invalidateLocationSnapshots() {
	if storage.Redis != nil {
		storage.Redis.Del(bgContext, "locations:all", "locations:active")
	}
}

// defaultUnitCapacity reads the classifier's capacity fallback from the
// environment. It encodes a business assumption, so it is configuration,
// not a literal.
func defaultUnitCapacity() int {
	if v := os.Getenv("DEFAULT_UNIT_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return services.DefaultUnitCapacity
}
