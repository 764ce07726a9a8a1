// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package search implements the event-search filter codec.

It maps the query string of an event list URL to a structured, bitmap-based
filter state ([Values]) and back again, so that every filter the user can
build in the UI is also a shareable, bookmarkable link.

Core Responsibility:

  - Decode: Permissive, per-key decoding of router query parameters with defaults.
  - Encode: The inverse mapping, producing the same keys and value shapes.
  - Grids: Day-of-week, hour-of-day and weekly hour grids, always fully populated.

Values are immutable by convention: every navigation produces a fresh [Values]
through [Codec.Decode]; nothing patches a decoded value in place.
*/
package search

// # Domain Enums

// ResultsOrder is the sort direction of the event list.
type ResultsOrder string

const (
	// ResultsOrderChronological lists the soonest events first.
	ResultsOrderChronological ResultsOrder = "chronological"

	// ResultsOrderReverseChronological lists the latest events first.
	ResultsOrderReverseChronological ResultsOrder = "reverse-chronological"
)

// IsValid reports whether o is a recognised [ResultsOrder] token.
func (o ResultsOrder) IsValid() bool {
	switch o {
	case ResultsOrderChronological, ResultsOrderReverseChronological:
		return true
	}
	return false
}

// Sort returns the GraphQL sort option for the event start time.
func (o ResultsOrder) Sort() map[string]string {
	if o == ResultsOrderReverseChronological {
		return map[string]string{"startTime": "DESC"}
	}
	return map[string]string{"startTime": "ASC"}
}

// LocationFilter selects how the event list is restricted geographically.
type LocationFilter string

const (
	// LocationFilterNone disables geographic filtering.
	LocationFilterNone LocationFilter = "none"

	// LocationFilterWithinRadius keeps events within Radius of the reference point.
	LocationFilterWithinRadius LocationFilter = "within-radius"
)

// IsValid reports whether f is a recognised [LocationFilter] token.
func (f LocationFilter) IsValid() bool {
	switch f {
	case LocationFilterNone, LocationFilterWithinRadius:
		return true
	}
	return false
}

// # Filter State

// Values is the decoded filter state of an event search (SearchEventValues).
//
// # Invariants
//
//   - BeginningOfDateRangeISO is never after EndOfDateRangeISO.
//   - Radius is non-negative.
//   - Tags and Channels are never nil.
//   - Weekdays, HourRanges and WeeklyHourRanges are always fully populated.
type Values struct {
	BeginningOfDateRangeISO string  `json:"beginningOfDateRangeISO" validate:"required"`
	EndOfDateRangeISO       string  `json:"endOfDateRangeISO" validate:"required"`
	Radius                  float64 `json:"radius" validate:"gte=0"`
	Latitude                float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude               float64 `json:"longitude" validate:"gte=-180,lte=180"`

	Tags        []string `json:"tags" validate:"dive,max=100"`
	Channels    []string `json:"channels" validate:"dive,max=100"`
	SearchInput string   `json:"searchInput" validate:"max=500"`

	ShowCanceledEvents bool `json:"showCanceledEvents"`
	Free               bool `json:"free"`

	Weekdays         map[Weekday]bool               `json:"weekdays"`
	HourRanges       map[HourRange]bool             `json:"hourRanges"`
	WeeklyHourRanges map[Weekday]map[HourRange]bool `json:"weeklyHourRanges"`

	ResultsOrder   ResultsOrder   `json:"resultsOrder" validate:"oneof=chronological reverse-chronological"`
	LocationFilter LocationFilter `json:"locationFilter" validate:"oneof=none within-radius"`
}

// SelectedWeekdays returns the selected weekdays in ascending order.
func (v Values) SelectedWeekdays() []Weekday {
	var selected []Weekday
	for _, day := range AllWeekdays() {
		if v.Weekdays[day] {
			selected = append(selected, day)
		}
	}
	return selected
}

// SelectedHourRanges returns the selected hour buckets in enumeration order.
func (v Values) SelectedHourRanges() []HourRange {
	var selected []HourRange
	for _, bucket := range AllHourRanges() {
		if v.HourRanges[bucket] {
			selected = append(selected, bucket)
		}
	}
	return selected
}

// # Reference Point

// Place is a named geographic reference point.
type Place struct {
	Name             string  `json:"name"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	ReferencePointID string  `json:"referencePointId"`
	Address          string  `json:"address"`
}

// DefaultPlace is the map center used when the URL carries no coordinates.
var DefaultPlace = Place{
	Name:             "Tempe Public Library",
	Latitude:         33.39131450000001,
	Longitude:        -111.9280626,
	ReferencePointID: "ChIJR35tTZ8IK4cR2D0p0AxOqbg",
	Address:          "3500 S Rural Rd, Tempe, AZ 85282, USA",
}
