// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"encoding/json"
	"net/url"
	"slices"
	"strconv"
)

// weekdayEntry, hourEntry and weeklyEntry fix the JSON field order of the
// encoded grids so that equal grids always produce equal query strings.
type weekdayEntry struct {
	StartTimeDayOfWeek string `json:"startTimeDayOfWeek"`
}

type hourEntry struct {
	StartTimeHourOfDay HourRange `json:"startTimeHourOfDay"`
}

type weeklyEntry struct {
	AND [2]any `json:"AND"`
}

// Encode is the inverse of [Codec.Decode].
//
// Dates, radius, coordinates, resultsOrder and locationFilter are always
// written. Empty lists, empty search text, false flags and all-false grids are
// left out because decoding reconstructs them from defaults.
func Encode(values Values) Params {
	params := Params{
		KeyBeginningOfDateRange: values.BeginningOfDateRangeISO,
		KeyEndOfDateRange:       values.EndOfDateRangeISO,
		KeyRadius:               values.Radius,
		KeyLatitude:             values.Latitude,
		KeyLongitude:            values.Longitude,
		KeyResultsOrder:         string(values.ResultsOrder),
		KeyLocationFilter:       string(values.LocationFilter),
	}

	if len(values.Tags) > 0 {
		params[KeyTags] = slices.Clone(values.Tags)
	}
	if len(values.Channels) > 0 {
		params[KeyChannels] = slices.Clone(values.Channels)
	}
	if values.SearchInput != "" {
		params[KeySearchInput] = values.SearchInput
	}
	if values.ShowCanceledEvents {
		params[KeyShowCanceledEvents] = true
	}
	if values.Free {
		params[KeyFree] = true
	}

	if grid := encodeWeekdays(values.Weekdays); grid != "" {
		params[KeyWeekdays] = grid
	}
	if grid := encodeHourRanges(values.HourRanges); grid != "" {
		params[KeyHourRanges] = grid
	}
	if grid := encodeWeeklyHourRanges(values.WeeklyHourRanges); grid != "" {
		params[KeyWeeklyHourRanges] = grid
	}

	return params
}

// EncodeQuery encodes values as URL query parameters.
//
// Numbers use the shortest representation that parses back to the same
// float64, so [DecodeQuery] restores the exact value.
func EncodeQuery(values Values) url.Values {
	query := url.Values{}
	for key, raw := range Encode(values) {
		switch value := raw.(type) {
		case string:
			query.Set(key, value)
		case []string:
			query[key] = value
		case float64:
			query.Set(key, strconv.FormatFloat(value, 'f', -1, 64))
		case bool:
			query.Set(key, strconv.FormatBool(value))
		}
	}
	return query
}

// # Grid Encoding

func encodeWeekdays(weekdays map[Weekday]bool) string {
	var entries []weekdayEntry
	for _, day := range AllWeekdays() {
		if weekdays[day] {
			entries = append(entries, weekdayEntry{StartTimeDayOfWeek: day.String()})
		}
	}
	return marshalEntries(entries)
}

func encodeHourRanges(hourRanges map[HourRange]bool) string {
	var entries []hourEntry
	for _, bucket := range hourRangeOrder {
		if hourRanges[bucket] {
			entries = append(entries, hourEntry{StartTimeHourOfDay: bucket})
		}
	}
	return marshalEntries(entries)
}

func encodeWeeklyHourRanges(grid map[Weekday]map[HourRange]bool) string {
	var entries []weeklyEntry
	for _, day := range AllWeekdays() {
		for _, bucket := range hourRangeOrder {
			if grid[day][bucket] {
				entries = append(entries, weeklyEntry{AND: [2]any{
					hourEntry{StartTimeHourOfDay: bucket},
					weekdayEntry{StartTimeDayOfWeek: day.String()},
				}})
			}
		}
	}
	return marshalEntries(entries)
}

// marshalEntries returns "" for an empty grid.
func marshalEntries[T any](entries []T) string {
	if len(entries) == 0 {
		return ""
	}
	encoded, err := json.Marshal(entries)
	if err != nil {
		return ""
	}
	return string(encoded)
}
