// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/taibuivan/agora/internal/event/search"
	"github.com/taibuivan/agora/pkg/slice"
)

var weekdayNames = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// summarize renders values as short human-readable lines relative to now.
func summarize(values search.Values, now time.Time) []string {
	lines := []string{
		"Dates:    " + dateLine(values.BeginningOfDateRangeISO, now) + " to " + dateLine(values.EndOfDateRangeISO, now),
	}

	switch values.LocationFilter {
	case search.LocationFilterWithinRadius:
		lines = append(lines, fmt.Sprintf("Location: within %s of (%s, %s)",
			humanize.Commaf(values.Radius),
			humanize.FtoaWithDigits(values.Latitude, 5),
			humanize.FtoaWithDigits(values.Longitude, 5)))
	default:
		lines = append(lines, "Location: anywhere")
	}

	lines = append(lines,
		"Filters:  "+search.TagLabel(values.Tags)+", "+search.ChannelLabel(values.Channels),
		"Days:     "+weekdayLine(values),
		"Hours:    "+hourLine(values),
		"Order:    "+orderLine(values.ResultsOrder),
	)

	var flags []string
	if values.Free {
		flags = append(flags, "free only")
	}
	if values.ShowCanceledEvents {
		flags = append(flags, "including canceled")
	}
	if values.SearchInput != "" {
		flags = append(flags, fmt.Sprintf("matching %q", values.SearchInput))
	}
	if len(flags) > 0 {
		lines = append(lines, "Also:     "+strings.Join(flags, ", "))
	}
	return lines
}

// dateLine formats an ISO timestamp as a date plus its distance from now.
func dateLine(iso string, now time.Time) string {
	at, err := search.ParseTimestamp(iso, now.Location())
	if err != nil {
		return iso
	}
	return at.Format("Mon 2 Jan 2006") + " (" + humanize.RelTime(at, now, "ago", "from now") + ")"
}

func weekdayLine(values search.Values) string {
	selected := values.SelectedWeekdays()
	// No selection and a full selection both leave the list unfiltered.
	if len(selected) == 0 || len(selected) == len(search.AllWeekdays()) {
		return "every day"
	}
	return strings.Join(slice.Map(selected, func(day search.Weekday) string {
		return weekdayNames[day]
	}), ", ")
}

func hourLine(values search.Values) string {
	selected := values.SelectedHourRanges()
	if len(selected) == 0 || len(selected) == len(search.AllHourRanges()) {
		return "any time"
	}
	return strings.Join(slice.Map(selected, search.HourRange.Label), ", ")
}

func orderLine(order search.ResultsOrder) string {
	var sort []string
	for field, direction := range order.Sort() {
		sort = append(sort, field+" "+direction)
	}
	return string(order) + " (" + strings.Join(sort, ", ") + ")"
}
