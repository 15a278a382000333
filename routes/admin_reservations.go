package routes

import (
	"strings"

	"github.com/chadtanner/churchs-turkey-app/models"
	"github.com/chadtanner/churchs-turkey-app/storage"
	"github.com/chadtanner/churchs-turkey-app/utils"

	"github.com/kataras/iris/v12"
)

// GET /api/admin/reservations?locations=101,102,205
//
// Looks up reservations for one or more locations (comma-separated ids)
// and returns them grouped per location, newest first within each group.
func AdminListReservations(ctx iris.Context) {
	raw := ctx.URLParam("locations")
	locationIDs := []string{}
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			locationIDs = append(locationIDs, trimmed)
		}
	}

	if len(locationIDs) == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error",
			"locations query parameter is required", ctx)
		return
	}

	var reservations []models.Reservation
	if err := storage.DB.Where("location_id IN ?", locationIDs).
		Order("location_id").
		Order("created_at DESC").
		Find(&reservations).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	// Group by location, preserving the requested id order.
	grouped := map[string][]models.Reservation{}
	for _, reservation := range reservations {
		grouped[reservation.LocationID] = append(grouped[reservation.LocationID], reservation)
	}

	data := []iris.Map{}
	for _, locationID := range locationIDs {
		group, ok := grouped[locationID]
		if !ok {
			continue
		}
		name := group[0].LocationName
		data = append(data, iris.Map{
			"locationId":   locationID,
			"locationName": name,
			"reservations": group,
			"count":        len(group),
		})
	}

	ctx.JSON(iris.Map{
		"data":  data,
		"meta":  iris.Map{"total": len(reservations)},
		"links": iris.Map{},
	})
}
