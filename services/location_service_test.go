package services

import (
	"reflect"
	"testing"

	"github.com/chadtanner/churchs-turkey-app/models"
)

func statusLocation(id string, available, reserved, capacity int) models.Location {
	return models.Location{
		LocationID:     id,
		Name:           "Church's #" + id,
		AvailableUnits: available,
		UnitsReserved:  reserved,
		TotalCapacity:  capacity,
	}
}

func TestCategorizeLocationsBuckets(t *testing.T) {
	locations := []models.Location{
		statusLocation("1", 12, 0, 12), // no reservations
		statusLocation("2", 0, 12, 12), // sold out (100% would also match >=75)
		statusLocation("3", 3, 9, 12),  // 75%
		statusLocation("4", 6, 6, 12),  // 50%
		statusLocation("5", 11, 1, 12), // low
		statusLocation("6", 0, 10, 24), // sold out even though percent < 100
	}

	categorized := CategorizeLocations(locations, 0)

	assertBucket := func(name string, bucket []LocationStatus, ids ...string) {
		t.Helper()
		if len(bucket) != len(ids) {
			t.Fatalf("%s: expected %d entries, got %d", name, len(ids), len(bucket))
		}
		for i, id := range ids {
			if bucket[i].Location.LocationID != id {
				t.Errorf("%s[%d]: expected location %s, got %s", name, i, id, bucket[i].Location.LocationID)
			}
		}
	}

	assertBucket("noReservations", categorized.NoReservations, "1")
	assertBucket("soldOut", categorized.SoldOut, "2", "6")
	assertBucket("threeQuarters", categorized.ThreeQuartersReserved, "3")
	assertBucket("half", categorized.HalfReserved, "4")
	assertBucket("low", categorized.LowReservations, "5")
	assertBucket("other", categorized.Other)
}

func TestCategorizeLocationsNoReservationsWins(t *testing.T) {
	// An untouched location goes to noReservations, never anywhere else.
	categorized := CategorizeLocations([]models.Location{statusLocation("1", 12, 0, 12)}, 0)
	if len(categorized.NoReservations) != 1 {
		t.Fatalf("expected location in noReservations, got %+v", categorized)
	}
	if categorized.NoReservations[0].PercentReserved != 0 {
		t.Fatalf("expected 0%% reserved, got %f", categorized.NoReservations[0].PercentReserved)
	}
}

func TestCategorizeLocationsSoldOutBeatsThreeQuarters(t *testing.T) {
	// availableUnits == 0 with percent exactly 100: sold-out precedence
	// wins over the >= 75 branch.
	categorized := CategorizeLocations([]models.Location{statusLocation("1", 0, 12, 12)}, 0)
	if len(categorized.SoldOut) != 1 {
		t.Fatalf("expected sold-out bucket, got %+v", categorized)
	}
	if len(categorized.ThreeQuartersReserved) != 0 {
		t.Fatalf("location must not appear in two buckets")
	}
}

func TestCategorizeLocationsDefaultCapacity(t *testing.T) {
	// Capacity metadata absent: the injected fallback drives the math.
	location := statusLocation("1", 0, 6, 0)

	categorized := CategorizeLocations([]models.Location{location}, 12)
	if len(categorized.SoldOut) != 1 {
		t.Fatalf("expected sold-out (availableUnits=0), got %+v", categorized)
	}
	if categorized.SoldOut[0].TotalCapacity != 12 {
		t.Fatalf("expected fallback capacity 12, got %d", categorized.SoldOut[0].TotalCapacity)
	}

	// Different fallback changes the derived percentages.
	categorized = CategorizeLocations([]models.Location{statusLocation("2", 2, 6, 0)}, 8)
	if len(categorized.ThreeQuartersReserved) != 1 {
		t.Fatalf("expected 6/8 = 75%% in threeQuarters, got %+v", categorized)
	}
}

func TestCategorizeLocationsSortKeys(t *testing.T) {
	locations := []models.Location{
		statusLocation("a", 6, 0, 6),
		statusLocation("b", 24, 0, 24), // larger capacity ranks first among untouched
		statusLocation("c", 11, 1, 12), // ~8%
		statusLocation("d", 9, 3, 12),  // 25% ranks before c
		statusLocation("e", 0, 6, 6),
		statusLocation("f", 0, 24, 24), // more reserved ranks first among sold out
	}

	categorized := CategorizeLocations(locations, 0)

	if categorized.NoReservations[0].Location.LocationID != "b" {
		t.Errorf("noReservations should sort by capacity descending")
	}
	if categorized.LowReservations[0].Location.LocationID != "d" {
		t.Errorf("low bucket should sort by percent descending")
	}
	if categorized.SoldOut[0].Location.LocationID != "f" {
		t.Errorf("soldOut should sort by reserved descending")
	}
}

func TestCategorizeLocationsDeterministic(t *testing.T) {
	locations := []models.Location{
		statusLocation("1", 6, 6, 12),
		statusLocation("2", 3, 3, 6), // identical percent as "1"
		statusLocation("3", 0, 12, 12),
		statusLocation("4", 12, 0, 12),
	}

	first := CategorizeLocations(locations, 0)
	second := CategorizeLocations(locations, 0)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("classifier is not deterministic for equal snapshots")
	}
}

func searchLocation(id, state, city, name string) models.Location {
	return models.Location{LocationID: id, State: state, City: city, Name: name}
}

func TestSearchLocationsEmptyQuery(t *testing.T) {
	locations := []models.Location{searchLocation("1", "TX", "Dallas", "Church's Dallas")}
	for _, query := range []string{"", "   "} {
		if got := SearchLocations(locations, query); len(got) != 0 {
			t.Fatalf("query %q: search must be opt-in, got %d results", query, len(got))
		}
	}
}

func TestSearchLocationsMatchFields(t *testing.T) {
	locations := []models.Location{
		searchLocation("1001", "TX", "Dallas", "Church's Northside"),
		searchLocation("1002", "GA", "Atlanta", "Church's Midtown"),
	}

	cases := map[string]string{
		"1001":    "1001", // exact id
		"ga":      "1002", // state, case-insensitive
		"dall":    "1001", // city substring
		"midtown": "1002", // name substring
	}
	for query, wantID := range cases {
		got := SearchLocations(locations, query)
		if len(got) != 1 || got[0].LocationID != wantID {
			t.Errorf("query %q: expected single match %s, got %v", query, wantID, got)
		}
	}

	if got := SearchLocations(locations, "wyoming"); len(got) != 0 {
		t.Errorf("expected no matches for unrelated query, got %v", got)
	}
}

func TestSearchLocationsStateBeatsName(t *testing.T) {
	// "tx" matches one location's state exactly and another's name as a
	// substring; the state match must rank first.
	locations := []models.Location{
		searchLocation("2001", "AR", "Texarkana", "Church's TX Border Stop"),
		searchLocation("1001", "TX", "Austin", "Church's Austin"),
	}

	got := SearchLocations(locations, "tx")
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].LocationID != "1001" || got[1].LocationID != "2001" {
		t.Fatalf("expected state match first, got order %s, %s", got[0].LocationID, got[1].LocationID)
	}
}

func TestSearchLocationsExactIDFirst(t *testing.T) {
	locations := []models.Location{
		searchLocation("88", "TX", "Austin", "Church's Austin"),
		searchLocation("1088", "TX", "Dallas", "Church's 88th Street"),
	}

	got := SearchLocations(locations, "88")
	if len(got) == 0 || got[0].LocationID != "88" {
		t.Fatalf("expected exact id match ranked first, got %v", got)
	}
}

func TestSearchLocationsStateGroupOrdering(t *testing.T) {
	// Within the state-match tier: city, then name.
	locations := []models.Location{
		searchLocation("3", "TX", "Houston", "Church's B"),
		searchLocation("1", "TX", "Austin", "Church's Z"),
		searchLocation("2", "TX", "Austin", "Church's A"),
	}

	got := SearchLocations(locations, "tx")
	wantOrder := []string{"2", "1", "3"}
	for i, want := range wantOrder {
		if got[i].LocationID != want {
			t.Fatalf("state group order: expected %v, got %v", wantOrder, got)
		}
	}
}

func TestSearchLocationsIdempotent(t *testing.T) {
	locations := []models.Location{
		searchLocation("1", "TX", "Dallas", "Church's North"),
		searchLocation("2", "TX", "Austin", "Church's South"),
	}

	first := SearchLocations(locations, "tx")
	second := SearchLocations(locations, "tx")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("search is not deterministic for equal snapshots")
	}
}
