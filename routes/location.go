package routes

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/chadtanner/churchs-turkey-app/models"
	"github.com/chadtanner/churchs-turkey-app/storage"
	"github.com/chadtanner/churchs-turkey-app/utils"

	"github.com/kataras/iris/v12"
)

const (
	nearbyRadiusMiles  = 50
	locationResultsCap = 10
)

// GetLocations lists active locations accepting reservations, optionally
// filtered by a free-text query (city, state, zip or name) and sorted by
// distance when the caller supplies coordinates.
//
// With coordinates and no query, locations beyond 50 miles are dropped
// unless nothing is within range, in which case the closest ones are
// returned as a fallback.
func GetLocations(ctx iris.Context) {
	locations, err := locationSnapshot(true)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	query := strings.ToLower(strings.TrimSpace(ctx.URLParam("q")))
	lat, latErr := strconv.ParseFloat(ctx.URLParam("lat"), 64)
	lng, lngErr := strconv.ParseFloat(ctx.URLParam("lng"), 64)
	hasCoords := latErr == nil && lngErr == nil

	results := locations
	if query != "" {
		results = []models.Location{}
		for _, location := range locations {
			if strings.Contains(strings.ToLower(location.City), query) ||
				strings.Contains(strings.ToLower(location.State), query) ||
				strings.Contains(location.Zip, query) ||
				strings.Contains(strings.ToLower(location.Name), query) {
				results = append(results, location)
			}
		}
		if hasCoords {
			sortByDistance(results, lat, lng)
		}
	} else if hasCoords {
		sortByDistance(results, lat, lng)

		nearby := []models.Location{}
		for _, location := range results {
			if utils.CalculateDistance(lat, lng, location.Lat, location.Lng) <= nearbyRadiusMiles {
				nearby = append(nearby, location)
			}
		}
		// Nothing within range: leave the full distance-sorted list so the
		// caller can still show the closest options.
		if len(nearby) > 0 {
			results = nearby
		}
	}

	if len(results) > locationResultsCap {
		results = results[:locationResultsCap]
	}

	ctx.JSON(iris.Map{
		"success": true,
		"data":    results,
		"count":   len(results),
	})
}

func sortByDistance(locations []models.Location, lat, lng float64) {
	sort.SliceStable(locations, func(i, j int) bool {
		distI := utils.CalculateDistance(lat, lng, locations[i].Lat, locations[i].Lng)
		distJ := utils.CalculateDistance(lat, lng, locations[j].Lat, locations[j].Lng)
		return distI < distJ
	})
}

// GetLocation returns one location by its public location id.
func GetLocation(ctx iris.Context) {
	locationID := ctx.Params().Get("id")

	var location models.Location
	if err := storage.DB.Where("location_id = ?", locationID).First(&location).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Location not found", ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": location})
}

// GetLocationSlots returns the selectable pickup times for a location's
// pickup date. A closed day yields an empty list, not an error.
func GetLocationSlots(ctx iris.Context) {
	locationID := ctx.Params().Get("id")

	var location models.Location
	if err := storage.DB.Where("location_id = ?", locationID).First(&location).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Location not found", ctx)
		return
	}

	slots, err := utils.GenerateTimeSlots(&location)
	if err != nil {
		if errors.Is(err, utils.ErrSlotConfig) {
			// Data-entry problem on the location record, not the caller's fault.
			utils.CreateError(iris.StatusInternalServerError, "Configuration Error",
				"Pickup times are misconfigured for this location", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"data":    slots,
		"count":   len(slots),
	})
}
