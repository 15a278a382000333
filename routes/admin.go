package routes

import (
	"time"

	"github.com/chadtanner/churchs-turkey-app/models"
	"github.com/chadtanner/churchs-turkey-app/services"
	"github.com/chadtanner/churchs-turkey-app/storage"
	"github.com/chadtanner/churchs-turkey-app/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// GET /api/admin/dashboard
//
// Returns the five classification buckets plus fleet-wide totals. Reads a
// snapshot; concurrent commits may not be reflected until the cache TTL
// expires, which is acceptable for reporting.
func AdminDashboard(ctx iris.Context) {
	locations, err := locationSnapshot(false)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	capacityFallback := defaultUnitCapacity()
	categorized := services.CategorizeLocations(locations, capacityFallback)

	totalCapacity := 0
	totalReserved := 0
	totalAvailable := 0
	totalRevenue := 0.0
	for _, location := range locations {
		capacity := location.TotalCapacity
		if capacity == 0 {
			capacity = capacityFallback
		}
		totalCapacity += capacity
		totalReserved += location.UnitsReserved
		totalAvailable += location.AvailableUnits
		totalRevenue += float64(location.UnitsReserved) * location.UnitPrice
	}

	ctx.JSON(iris.Map{
		"data": iris.Map{
			"buckets": categorized,
			"summary": iris.Map{
				"total_capacity":     totalCapacity,
				"total_reserved":     totalReserved,
				"total_available":    totalAvailable,
				"total_revenue":      totalRevenue,
				"locations_sold_out": len(categorized.SoldOut),
				"location_count":     len(locations),
			},
		},
		"meta":  iris.Map{},
		"links": iris.Map{},
	})
}

// GET /api/admin/locations/search?q=
//
// Ranked location search for dashboard operators. Ordering is
// deterministic so repeat searches return stable results.
func AdminSearchLocations(ctx iris.Context) {
	locations, err := locationSnapshot(false)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	results := services.SearchLocations(locations, ctx.URLParam("q"))

	capacityFallback := defaultUnitCapacity()
	data := make([]services.LocationStatus, 0, len(results))
	for _, location := range results {
		capacity := location.TotalCapacity
		if capacity == 0 {
			capacity = capacityFallback
		}
		percent := 0.0
		if capacity > 0 {
			percent = float64(location.UnitsReserved) / float64(capacity) * 100
		}
		data = append(data, services.LocationStatus{
			Location:        location,
			TotalReserved:   location.UnitsReserved,
			TotalCapacity:   capacity,
			PercentReserved: percent,
		})
	}

	ctx.JSON(iris.Map{"data": data, "meta": iris.Map{"count": len(data)}, "links": iris.Map{}})
}

type UpdateLocationInput struct {
	AvailableUnits      *int     `json:"availableUnits"`
	PerOrderLimit       *int     `json:"perOrderLimit"`
	UnitPrice           *float64 `json:"unitPrice"`
	PickupDate          *string  `json:"pickupDate"`
	ReservationsEnabled *bool    `json:"reservationsEnabled"`
	DisabledReason      *string  `json:"disabledReason"`
}

// PATCH /api/admin/locations/{id}
//
// Inventory panel edits. Setting availableUnits re-derives totalCapacity
// from the current reserved count so the capacity invariant keeps holding.
func AdminUpdateLocation(ctx iris.Context) {
	locationID := ctx.Params().Get("id")

	var input UpdateLocationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var location models.Location
	if err := storage.DB.Where("location_id = ?", locationID).First(&location).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Location not found", ctx)
		return
	}

	updates := map[string]interface{}{}
	if input.AvailableUnits != nil {
		if *input.AvailableUnits < 0 {
			utils.CreateError(iris.StatusBadRequest, "Validation Error",
				"availableUnits cannot be negative", ctx)
			return
		}
		updates["available_units"] = *input.AvailableUnits
		// Re-derive capacity from the reserved count at write time; a commit
		// between our read and this update must not skew the total.
		updates["total_capacity"] = gorm.Expr("? + units_reserved", *input.AvailableUnits)
	}
	if input.PerOrderLimit != nil {
		updates["per_order_limit"] = *input.PerOrderLimit
	}
	if input.UnitPrice != nil {
		updates["unit_price"] = *input.UnitPrice
	}
	if input.PickupDate != nil {
		if _, err := time.Parse("2006-01-02", *input.PickupDate); err != nil {
			utils.CreateError(iris.StatusBadRequest, "Validation Error",
				"pickupDate must be YYYY-MM-DD", ctx)
			return
		}
		updates["pickup_date"] = *input.PickupDate
	}
	if input.ReservationsEnabled != nil {
		updates["reservations_enabled"] = *input.ReservationsEnabled
		if !*input.ReservationsEnabled {
			now := time.Now()
			updates["disabled_at"] = now
			if input.DisabledReason != nil {
				updates["disabled_reason"] = *input.DisabledReason
			}
		} else {
			updates["disabled_at"] = nil
			updates["disabled_reason"] = ""
		}
	}

	if len(updates) == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "No fields to update", ctx)
		return
	}

	if err := storage.DB.Model(&location).Updates(updates).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	invalidateLocationSnapshots()

	storage.DB.Where("location_id = ?", locationID).First(&location)
	ctx.JSON(iris.Map{"success": true, "data": location})
}

type BulkUpdateInput struct {
	PickupDate        *string `json:"pickupDate"`
	BufferAfterOpen   *int    `json:"bufferAfterOpen"`
	BufferBeforeClose *int    `json:"bufferBeforeClose"`
	SlotInterval      *int    `json:"slotInterval"`
}

// PATCH /api/admin/locations/bulk
//
// Applies pickup-date or pickup-window changes across every location,
// used when the promotion date shifts.
func AdminBulkUpdateLocations(ctx iris.Context) {
	var input BulkUpdateInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	updates := map[string]interface{}{}
	if input.PickupDate != nil {
		if _, err := time.Parse("2006-01-02", *input.PickupDate); err != nil {
			utils.CreateError(iris.StatusBadRequest, "Validation Error",
				"pickupDate must be YYYY-MM-DD", ctx)
			return
		}
		updates["pickup_date"] = *input.PickupDate
	}
	if input.BufferAfterOpen != nil {
		updates["buffer_after_open"] = *input.BufferAfterOpen
	}
	if input.BufferBeforeClose != nil {
		updates["buffer_before_close"] = *input.BufferBeforeClose
	}
	if input.SlotInterval != nil {
		if *input.SlotInterval <= 0 {
			utils.CreateError(iris.StatusBadRequest, "Validation Error",
				"slotInterval must be positive", ctx)
			return
		}
		updates["slot_interval"] = *input.SlotInterval
	}

	if len(updates) == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "No fields to update", ctx)
		return
	}

	res := storage.DB.Model(&models.Location{}).Where("1 = 1").Updates(updates)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	invalidateLocationSnapshots()

	ctx.JSON(iris.Map{"success": true, "updated": res.RowsAffected})
}
