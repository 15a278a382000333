package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/chadtanner/churchs-turkey-app/models"
	"github.com/chadtanner/churchs-turkey-app/utils"

	"gorm.io/gorm"
)

// InventoryService is the only mutator of location inventory. Every commit
// runs inside a single database transaction so that two concurrent commits
// against the same location can never both consume the last unit.
type InventoryService struct {
	db *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

type CustomerInfo struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

type CommitInput struct {
	LocationID string
	Quantity   int
	PickupTime string
	Customer   CustomerInfo

	Source    string
	UserAgent string
	IPAddress string
}

// Commit reserves Quantity units at the location, creating the reservation
// and decrementing available inventory atomically. On any precondition
// failure it returns one of the sentinel errors from errors.go with no
// visible state change.
func (s *InventoryService) Commit(input CommitInput) (*models.Reservation, error) {
	if input.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var reservation models.Reservation
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var location models.Location
		if err := tx.Where("location_id = ?", input.LocationID).First(&location).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLocationNotFound
			}
			return err
		}

		if input.Quantity > location.PerOrderLimit {
			return ErrOverLimit
		}
		if input.Quantity > location.AvailableUnits {
			return ErrInsufficientInventory
		}

		// Guarded decrement: the WHERE clause re-checks the counter at
		// write time, so a concurrent commit that drained the remaining
		// units between our read and this write matches zero rows instead
		// of driving the counter negative.
		res := tx.Model(&models.Location{}).
			Where("location_id = ? AND available_units >= ?", input.LocationID, input.Quantity).
			Updates(map[string]interface{}{
				"available_units": gorm.Expr("available_units - ?", input.Quantity),
				"units_reserved":  gorm.Expr("units_reserved + ?", input.Quantity),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientInventory
		}

		// Routes validate PickupTime; a location with a malformed PickupDate
		// still commits, just without the combined timestamp.
		var pickupDateTime time.Time
		if parsed, err := time.Parse("2006-01-02 15:04", location.PickupDate+" "+input.PickupTime); err == nil {
			pickupDateTime = parsed
		}

		reservation = models.Reservation{
			ConfirmationID:  utils.GenerateConfirmationID(),
			LocationID:      location.LocationID,
			LocationName:    location.Name,
			LocationAddress: location.FullAddress(),
			FirstName:       input.Customer.FirstName,
			LastName:        input.Customer.LastName,
			Email:           input.Customer.Email,
			Phone:           utils.NormalizePhoneNumber(input.Customer.Phone),
			Quantity:        input.Quantity,
			PickupDate:      location.PickupDate,
			PickupTime:      input.PickupTime,
			PickupDateTime:  pickupDateTime,
			TotalPrice:      float64(input.Quantity) * location.UnitPrice,
			Status:          "confirmed",
			Source:          input.Source,
			UserAgent:       input.UserAgent,
			IPAddress:       input.IPAddress,
		}
		return tx.Create(&reservation).Error
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrLocationNotFound),
			errors.Is(err, ErrInvalidQuantity),
			errors.Is(err, ErrOverLimit),
			errors.Is(err, ErrInsufficientInventory):
			return nil, err
		default:
			return nil, fmt.Errorf("%w: %v", ErrCommitFailed, err)
		}
	}

	return &reservation, nil
}
