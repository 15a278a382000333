package services

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/chadtanner/churchs-turkey-app/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newInventoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Named shared-memory database so every pooled connection sees the same
	// data; a single connection keeps sqlite happy under concurrent commits.
	dsn := fmt.Sprintf("file:inventory_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Location{}, &models.Reservation{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func seedInventoryLocation(t *testing.T, db *gorm.DB, available, limit int) models.Location {
	t.Helper()

	location := models.Location{
		LocationID:     "1001",
		Name:           "Church's Texas Chicken #1001",
		Street:         "100 Main St",
		City:           "Dallas",
		State:          "TX",
		Zip:            "75201",
		PickupDate:     "2026-11-25",
		AvailableUnits: available,
		PerOrderLimit:  limit,
		UnitPrice:      54.99,
		TotalCapacity:  available,
	}
	if err := db.Create(&location).Error; err != nil {
		t.Fatalf("failed to seed location: %v", err)
	}
	return location
}

func testCommitInput(quantity int) CommitInput {
	return CommitInput{
		LocationID: "1001",
		Quantity:   quantity,
		PickupTime: "11:15",
		Customer: CustomerInfo{
			FirstName: "Maria",
			LastName:  "Gonzalez",
			Email:     "maria@example.com",
			Phone:     "2145551234",
		},
		Source: "web",
	}
}

func TestCommitSuccess(t *testing.T) {
	db := newInventoryTestDB(t)
	seedInventoryLocation(t, db, 12, 4)
	service := NewInventoryService(db)

	reservation, err := service.Commit(testCommitInput(2))
	if err != nil {
		t.Fatalf("expected commit to succeed, got %v", err)
	}

	if reservation.ConfirmationID == "" {
		t.Error("expected a confirmation id")
	}
	if reservation.LocationID != "1001" {
		t.Errorf("expected location id 1001, got %s", reservation.LocationID)
	}
	if reservation.LocationName != "Church's Texas Chicken #1001" {
		t.Errorf("unexpected location name snapshot: %s", reservation.LocationName)
	}
	if reservation.Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", reservation.Quantity)
	}
	if reservation.TotalPrice != 2*54.99 {
		t.Errorf("expected total price %.2f, got %.2f", 2*54.99, reservation.TotalPrice)
	}
	if reservation.Status != "confirmed" {
		t.Errorf("expected status confirmed, got %s", reservation.Status)
	}
	if reservation.PickupDate != "2026-11-25" || reservation.PickupTime != "11:15" {
		t.Errorf("unexpected pickup snapshot: %s %s", reservation.PickupDate, reservation.PickupTime)
	}

	var location models.Location
	if err := db.Where("location_id = ?", "1001").First(&location).Error; err != nil {
		t.Fatalf("failed to reload location: %v", err)
	}
	if location.AvailableUnits != 10 {
		t.Errorf("expected 10 available units, got %d", location.AvailableUnits)
	}
	if location.UnitsReserved != 2 {
		t.Errorf("expected 2 reserved units, got %d", location.UnitsReserved)
	}
	if location.AvailableUnits+location.UnitsReserved != location.TotalCapacity {
		t.Errorf("capacity invariant broken: %d + %d != %d",
			location.AvailableUnits, location.UnitsReserved, location.TotalCapacity)
	}

	var persisted models.Reservation
	if err := db.Where("confirmation_id = ?", reservation.ConfirmationID).First(&persisted).Error; err != nil {
		t.Fatalf("reservation was not persisted: %v", err)
	}
}

func TestCommitLocationNotFound(t *testing.T) {
	db := newInventoryTestDB(t)
	service := NewInventoryService(db)

	input := testCommitInput(1)
	input.LocationID = "9999"
	if _, err := service.Commit(input); !errors.Is(err, ErrLocationNotFound) {
		t.Fatalf("expected ErrLocationNotFound, got %v", err)
	}
}

func TestCommitInvalidQuantity(t *testing.T) {
	db := newInventoryTestDB(t)
	seedInventoryLocation(t, db, 12, 4)
	service := NewInventoryService(db)

	for _, quantity := range []int{0, -1} {
		if _, err := service.Commit(testCommitInput(quantity)); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("quantity %d: expected ErrInvalidQuantity, got %v", quantity, err)
		}
	}
}

func TestCommitOverLimit(t *testing.T) {
	db := newInventoryTestDB(t)
	seedInventoryLocation(t, db, 12, 4)
	service := NewInventoryService(db)

	if _, err := service.Commit(testCommitInput(5)); !errors.Is(err, ErrOverLimit) {
		t.Fatalf("expected ErrOverLimit, got %v", err)
	}

	// A rejected commit must leave inventory untouched.
	var location models.Location
	db.Where("location_id = ?", "1001").First(&location)
	if location.AvailableUnits != 12 || location.UnitsReserved != 0 {
		t.Errorf("inventory changed on rejected commit: %d available, %d reserved",
			location.AvailableUnits, location.UnitsReserved)
	}
}

func TestCommitInsufficientInventory(t *testing.T) {
	db := newInventoryTestDB(t)
	seedInventoryLocation(t, db, 2, 4)
	service := NewInventoryService(db)

	if _, err := service.Commit(testCommitInput(3)); !errors.Is(err, ErrInsufficientInventory) {
		t.Fatalf("expected ErrInsufficientInventory, got %v", err)
	}
}

func TestCommitBoundaryQuantity(t *testing.T) {
	// Quantity exactly equal to both the available units and the per-order
	// limit is the inclusive upper bound and must succeed.
	db := newInventoryTestDB(t)
	seedInventoryLocation(t, db, 4, 4)
	service := NewInventoryService(db)

	if _, err := service.Commit(testCommitInput(4)); err != nil {
		t.Fatalf("expected boundary commit to succeed, got %v", err)
	}

	var location models.Location
	db.Where("location_id = ?", "1001").First(&location)
	if location.AvailableUnits != 0 {
		t.Errorf("expected 0 available units, got %d", location.AvailableUnits)
	}

	if _, err := service.Commit(testCommitInput(1)); !errors.Is(err, ErrInsufficientInventory) {
		t.Fatalf("expected ErrInsufficientInventory after drain, got %v", err)
	}
}

func TestCommitConcurrentLastUnit(t *testing.T) {
	// Two commits race for the last unit: exactly one wins and the counter
	// never goes negative.
	db := newInventoryTestDB(t)
	seedInventoryLocation(t, db, 1, 4)
	service := NewInventoryService(db)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = service.Commit(testCommitInput(1))
		}(i)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrInsufficientInventory):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || conflicts != 1 {
		t.Fatalf("expected exactly one winner, got %d successes and %d conflicts", successes, conflicts)
	}

	var location models.Location
	db.Where("location_id = ?", "1001").First(&location)
	if location.AvailableUnits != 0 {
		t.Errorf("expected 0 available units, got %d", location.AvailableUnits)
	}
	if location.UnitsReserved != 1 {
		t.Errorf("expected 1 reserved unit, got %d", location.UnitsReserved)
	}

	var count int64
	db.Model(&models.Reservation{}).Count(&count)
	if count != 1 {
		t.Errorf("expected exactly one reservation, got %d", count)
	}
}

func TestCommitPhoneNormalized(t *testing.T) {
	db := newInventoryTestDB(t)
	seedInventoryLocation(t, db, 12, 4)
	service := NewInventoryService(db)

	input := testCommitInput(1)
	input.Customer.Phone = "(214) 555-1234"
	reservation, err := service.Commit(input)
	if err != nil {
		t.Fatalf("expected commit to succeed, got %v", err)
	}
	if reservation.Phone != "2145551234" {
		t.Errorf("expected normalized phone, got %s", reservation.Phone)
	}
}
