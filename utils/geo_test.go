package utils

import (
	"math"
	"testing"
)

func TestCalculateDistance(t *testing.T) {
	// Dallas to Houston is roughly 225 miles as the crow flies.
	got := CalculateDistance(32.7767, -96.7970, 29.7604, -95.3698)
	if math.Abs(got-225) > 15 {
		t.Fatalf("Dallas-Houston distance: expected ~225 miles, got %.1f", got)
	}
}

func TestCalculateDistanceSamePoint(t *testing.T) {
	if got := CalculateDistance(32.7767, -96.7970, 32.7767, -96.7970); got != 0 {
		t.Fatalf("expected 0 for identical coordinates, got %f", got)
	}
}

func TestCalculateDistanceSymmetric(t *testing.T) {
	a := CalculateDistance(32.7767, -96.7970, 29.7604, -95.3698)
	b := CalculateDistance(29.7604, -95.3698, 32.7767, -96.7970)
	if math.Abs(a-b) > 1e-9 {
		t.Fatalf("distance not symmetric: %f vs %f", a, b)
	}
}
