package store

import (
	"testing"
	"time"

	"mounti/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildTripSearchFilter_Empty(t *testing.T) {
	filter := buildTripSearchFilter(TripSearch{})

	if len(filter) != 1 {
		t.Errorf("expected only the status filter, got %d entries", len(filter))
	}
	if filter["status"] != model.TripStatusActive {
		t.Errorf("expected active status filter, got %v", filter["status"])
	}
}

func TestBuildTripSearchFilter_Locations(t *testing.T) {
	filter := buildTripSearchFilter(TripSearch{
		FromLocation: "Paris",
		ToLocation:   "Casablanca",
	})

	from, ok := filter["from_location"].(primitive.Regex)
	if !ok {
		t.Fatalf("expected regex for from_location, got %T", filter["from_location"])
	}
	if from.Pattern != "Paris" || from.Options != "i" {
		t.Errorf("unexpected from_location regex: %+v", from)
	}

	to, ok := filter["to_location"].(primitive.Regex)
	if !ok {
		t.Fatalf("expected regex for to_location, got %T", filter["to_location"])
	}
	if to.Pattern != "Casablanca" || to.Options != "i" {
		t.Errorf("unexpected to_location regex: %+v", to)
	}
}

func TestBuildTripSearchFilter_QuotesRegexMetacharacters(t *testing.T) {
	filter := buildTripSearchFilter(TripSearch{FromLocation: "(a+)+b"})

	from := filter["from_location"].(primitive.Regex)
	if from.Pattern == "(a+)+b" {
		t.Error("expected regex metacharacters to be quoted")
	}
	if from.Pattern != `\(a\+\)\+b` {
		t.Errorf("unexpected quoted pattern: %s", from.Pattern)
	}
}

func TestBuildTripSearchFilter_DateWindow(t *testing.T) {
	date := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	filter := buildTripSearchFilter(TripSearch{DepartureDate: &date})

	window, ok := filter["departure_date"].(bson.M)
	if !ok {
		t.Fatalf("expected range filter for departure_date, got %T", filter["departure_date"])
	}

	wantStart := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	if !window["$gte"].(time.Time).Equal(wantStart) {
		t.Errorf("expected window start %v, got %v", wantStart, window["$gte"])
	}
	if !window["$lt"].(time.Time).Equal(wantEnd) {
		t.Errorf("expected window end %v, got %v", wantEnd, window["$lt"])
	}
}

func TestDayWindow_PreservesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	date := time.Date(2026, 3, 15, 23, 59, 0, 0, loc)

	start, end := dayWindow(date)

	if start.Location() != loc {
		t.Errorf("expected window in the input's location, got %v", start.Location())
	}
	if got := end.Sub(start); got != 24*time.Hour {
		t.Errorf("expected a 24h window, got %v", got)
	}
}
