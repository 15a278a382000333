package services

import (
	"sort"
	"strings"

	"github.com/chadtanner/churchs-turkey-app/models"
)

// DefaultUnitCapacity is the business fallback used when a location was
// loaded without capacity metadata. Callers can override it per call;
// routes wire it from DEFAULT_UNIT_CAPACITY.
const DefaultUnitCapacity = 12

// LocationStatus is the derived dashboard view of one location. It is
// computed on demand and never persisted.
type LocationStatus struct {
	Location        models.Location `json:"location"`
	TotalReserved   int             `json:"totalReserved"`
	TotalCapacity   int             `json:"totalCapacity"`
	PercentReserved float64         `json:"percentReserved"`
}

// CategorizedLocations partitions the location set into the five dashboard
// buckets. Other is reserved for future use and always empty.
type CategorizedLocations struct {
	NoReservations        []LocationStatus `json:"noReservations"`
	LowReservations       []LocationStatus `json:"lowReservations"`
	HalfReserved          []LocationStatus `json:"halfReserved"`
	ThreeQuartersReserved []LocationStatus `json:"threeQuartersReserved"`
	SoldOut               []LocationStatus `json:"soldOut"`
	Other                 []LocationStatus `json:"other"`
}

// CategorizeLocations assigns every location to exactly one bucket and
// sorts each bucket. Pure over the snapshot: equal inputs yield equal
// output, including intra-bucket order (stable sorts over snapshot order).
//
// Bucket precedence matters: a fully reserved location satisfies both the
// sold-out and three-quarters conditions, and sold-out must win.
func CategorizeLocations(locations []models.Location, defaultCapacity int) CategorizedLocations {
	if defaultCapacity <= 0 {
		defaultCapacity = DefaultUnitCapacity
	}

	categorized := CategorizedLocations{
		NoReservations:        []LocationStatus{},
		LowReservations:       []LocationStatus{},
		HalfReserved:          []LocationStatus{},
		ThreeQuartersReserved: []LocationStatus{},
		SoldOut:               []LocationStatus{},
		Other:                 []LocationStatus{},
	}

	for _, location := range locations {
		totalReserved := location.UnitsReserved
		totalCapacity := location.TotalCapacity
		if totalCapacity == 0 {
			totalCapacity = defaultCapacity
		}

		percentReserved := 0.0
		if totalCapacity > 0 {
			percentReserved = float64(totalReserved) / float64(totalCapacity) * 100
		}

		status := LocationStatus{
			Location:        location,
			TotalReserved:   totalReserved,
			TotalCapacity:   totalCapacity,
			PercentReserved: percentReserved,
		}

		switch {
		case totalReserved == 0:
			categorized.NoReservations = append(categorized.NoReservations, status)
		case location.AvailableUnits == 0:
			// AvailableUnits is authoritative for sold out, even when the
			// capacity math says less than 100%.
			categorized.SoldOut = append(categorized.SoldOut, status)
		case percentReserved >= 75:
			categorized.ThreeQuartersReserved = append(categorized.ThreeQuartersReserved, status)
		case percentReserved >= 50:
			categorized.HalfReserved = append(categorized.HalfReserved, status)
		default:
			// 1-49% reserved
			categorized.LowReservations = append(categorized.LowReservations, status)
		}
	}

	sort.SliceStable(categorized.NoReservations, func(i, j int) bool {
		return categorized.NoReservations[i].TotalCapacity > categorized.NoReservations[j].TotalCapacity
	})
	byPercentDesc := func(bucket []LocationStatus) func(i, j int) bool {
		return func(i, j int) bool {
			return bucket[i].PercentReserved > bucket[j].PercentReserved
		}
	}
	sort.SliceStable(categorized.LowReservations, byPercentDesc(categorized.LowReservations))
	sort.SliceStable(categorized.HalfReserved, byPercentDesc(categorized.HalfReserved))
	sort.SliceStable(categorized.ThreeQuartersReserved, byPercentDesc(categorized.ThreeQuartersReserved))
	sort.SliceStable(categorized.SoldOut, func(i, j int) bool {
		return categorized.SoldOut[i].TotalReserved > categorized.SoldOut[j].TotalReserved
	})

	return categorized
}

// SearchLocations filters the snapshot by a free-text query against
// location id, state, city and name, and ranks the matches:
//
//  1. exact location id match
//  2. exact state match, sub-sorted by city then name
//  3. everything else, by name
//
// An empty query returns no results; search is opt-in, never "browse all".
func SearchLocations(locations []models.Location, query string) []models.Location {
	normalizedQuery := strings.ToLower(strings.TrimSpace(query))
	if normalizedQuery == "" {
		return []models.Location{}
	}

	results := []models.Location{}
	for _, location := range locations {
		switch {
		case location.LocationID == normalizedQuery:
		case strings.ToLower(location.State) == normalizedQuery:
		case strings.Contains(strings.ToLower(location.City), normalizedQuery):
		case strings.Contains(strings.ToLower(location.Name), normalizedQuery):
		default:
			continue
		}
		results = append(results, location)
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]

		aIDMatch := a.LocationID == normalizedQuery
		bIDMatch := b.LocationID == normalizedQuery
		if aIDMatch != bIDMatch {
			return aIDMatch
		}

		aStateMatch := strings.ToLower(a.State) == normalizedQuery
		bStateMatch := strings.ToLower(b.State) == normalizedQuery
		if aStateMatch != bStateMatch {
			return aStateMatch
		}

		if aStateMatch && bStateMatch {
			if c := strings.Compare(strings.ToLower(a.City), strings.ToLower(b.City)); c != 0 {
				return c < 0
			}
		}

		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) < 0
	})

	return results
}
