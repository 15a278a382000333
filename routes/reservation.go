package routes

import (
	"errors"
	"time"

	"github.com/chadtanner/churchs-turkey-app/models"
	"github.com/chadtanner/churchs-turkey-app/services"
	"github.com/chadtanner/churchs-turkey-app/storage"
	"github.com/chadtanner/churchs-turkey-app/utils"

	"github.com/kataras/iris/v12"
)

type CreateReservationInput struct {
	LocationID string `json:"locationId" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required"`
	PickupTime string `json:"pickupTime" validate:"required"`
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
}

// CreateReservation commits a reservation against the location's shared
// inventory and fires the confirmation email. The commit is the only
// inventory mutation in the system; everything after it is best effort.
func CreateReservation(ctx iris.Context) {
	var input CreateReservationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if !utils.ValidatePhoneNumber(input.Phone) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error",
			"Phone number must have ten digits", ctx)
		return
	}

	if _, err := time.Parse("15:04", input.PickupTime); err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error",
			"pickupTime must be HH:MM in 24-hour time", ctx)
		return
	}

	inventory := services.NewInventoryService(storage.DB)
	reservation, err := inventory.Commit(services.CommitInput{
		LocationID: input.LocationID,
		Quantity:   input.Quantity,
		PickupTime: input.PickupTime,
		Customer: services.CustomerInfo{
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Email:     input.Email,
			Phone:     input.Phone,
		},
		Source:    "web",
		UserAgent: ctx.GetHeader("User-Agent"),
		IPAddress: ctx.RemoteAddr(),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLocationNotFound):
			utils.CreateError(iris.StatusNotFound, "Not Found", "Location not found", ctx)
		case errors.Is(err, services.ErrInvalidQuantity):
			utils.CreateError(iris.StatusBadRequest, "Invalid Quantity",
				"Quantity must be at least 1", ctx)
		case errors.Is(err, services.ErrOverLimit):
			utils.CreateError(iris.StatusBadRequest, "Over Limit",
				"Quantity exceeds the per-order limit for this location", ctx)
		case errors.Is(err, services.ErrInsufficientInventory):
			utils.CreateError(iris.StatusConflict, "Insufficient Inventory",
				"Not enough turkeys left at this location; reduce the quantity or pick another location", ctx)
		default:
			// Transient contention; the customer can resubmit.
			utils.CreateError(iris.StatusServiceUnavailable, "Commit Failed",
				"Could not complete the reservation, please try again", ctx)
		}
		return
	}

	invalidateLocationSnapshots()

	// Fire-and-forget confirmation email; delivery never gates the
	// reservation's validity.
	var location models.Location
	if err := storage.DB.Where("location_id = ?", reservation.LocationID).First(&location).Error; err == nil {
		emailService := services.NewEmailService(storage.DB)
		go emailService.SendReservationConfirmation(*reservation, location)
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{
		"success": true,
		"message": "Reservation confirmed",
		"data":    reservation,
	})
}

// GetReservationByConfirmation looks up one reservation by its shareable
// confirmation id.
func GetReservationByConfirmation(ctx iris.Context) {
	confirmationID := ctx.Params().Get("confirmationId")

	var reservation models.Reservation
	if err := storage.DB.Where("confirmation_id = ?", confirmationID).First(&reservation).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Reservation not found", ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": reservation})
}

// GetReservationsByLocation lists a location's reservations, newest first.
func GetReservationsByLocation(ctx iris.Context) {
	locationID := ctx.Params().Get("id")

	var reservations []models.Reservation
	if err := storage.DB.Where("location_id = ?", locationID).
		Order("created_at DESC").
		Find(&reservations).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": reservations, "count": len(reservations)})
}
