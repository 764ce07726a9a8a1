// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"slices"
	"strconv"
)

// # Weekdays

// Weekday is a day-of-week index, 0 (Sunday) through 6 (Saturday).
type Weekday int

// weekdayCount is the number of rows in every weekday grid.
const weekdayCount = 7

// IsValid reports whether d is within 0..6.
func (d Weekday) IsValid() bool {
	return d >= 0 && d < weekdayCount
}

// String returns the query token of d ("0".."6").
func (d Weekday) String() string {
	return strconv.Itoa(int(d))
}

// AllWeekdays returns every weekday in ascending order.
func AllWeekdays() []Weekday {
	days := make([]Weekday, weekdayCount)
	for i := range days {
		days[i] = Weekday(i)
	}
	return days
}

// # Hour Buckets

// HourRange identifies one bucket of the closed hour-of-day enumeration.
//
// Events are matched against the explicit list of start hours a bucket
// covers rather than a numeric range comparison.
type HourRange string

const (
	HourRange12amTo3am HourRange = "12am-3am"
	HourRange3amTo6am  HourRange = "3am-6am"
	HourRange6amTo9am  HourRange = "6am-9am"
	HourRange9amTo12pm HourRange = "9am-12pm"
	HourRange12pmTo3pm HourRange = "12pm-3pm"
	HourRange3pmTo6pm  HourRange = "3pm-6pm"
	HourRange6pmTo9pm  HourRange = "6pm-9pm"
	HourRange9pmTo12am HourRange = "9pm-12am"
)

type hourRangeInfo struct {
	label string
	// min is inclusive, max exclusive (24-hour clock).
	min, max int
}

var hourRangeOrder = []HourRange{
	HourRange12amTo3am,
	HourRange3amTo6am,
	HourRange6amTo9am,
	HourRange9amTo12pm,
	HourRange12pmTo3pm,
	HourRange3pmTo6pm,
	HourRange6pmTo9pm,
	HourRange9pmTo12am,
}

var hourRangeTable = map[HourRange]hourRangeInfo{
	HourRange12amTo3am: {label: "12am-3am", min: 0, max: 3},
	HourRange3amTo6am:  {label: "3am-6am", min: 3, max: 6},
	HourRange6amTo9am:  {label: "6am-9am", min: 6, max: 9},
	HourRange9amTo12pm: {label: "9am-12pm", min: 9, max: 12},
	HourRange12pmTo3pm: {label: "12pm-3pm", min: 12, max: 15},
	HourRange3pmTo6pm:  {label: "3pm-6pm", min: 15, max: 18},
	HourRange6pmTo9pm:  {label: "6pm-9pm", min: 18, max: 21},
	HourRange9pmTo12am: {label: "9pm-12am", min: 21, max: 24},
}

// AllHourRanges returns every bucket in enumeration order.
func AllHourRanges() []HourRange {
	return slices.Clone(hourRangeOrder)
}

// IsValid reports whether h belongs to the bucket enumeration.
func (h HourRange) IsValid() bool {
	_, ok := hourRangeTable[h]
	return ok
}

// Label returns the display label of h, or "" for an unknown bucket.
func (h HourRange) Label() string {
	return hourRangeTable[h].label
}

// Hours returns the start hours (0..23) covered by h.
func (h HourRange) Hours() []int {
	info, ok := hourRangeTable[h]
	if !ok {
		return nil
	}
	hours := make([]int, 0, info.max-info.min)
	for hour := info.min; hour < info.max; hour++ {
		hours = append(hours, hour)
	}
	return hours
}

// # Default Generators

// DefaultWeekdays returns a new mapping of all seven weekdays to false.
func DefaultWeekdays() map[Weekday]bool {
	weekdays := make(map[Weekday]bool, weekdayCount)
	for _, day := range AllWeekdays() {
		weekdays[day] = false
	}
	return weekdays
}

// DefaultHourRanges returns a new mapping of every hour bucket to false.
func DefaultHourRanges() map[HourRange]bool {
	hourRanges := make(map[HourRange]bool, len(hourRangeOrder))
	for _, bucket := range hourRangeOrder {
		hourRanges[bucket] = false
	}
	return hourRanges
}

// DefaultWeeklyHourRanges returns a new 7 x buckets grid set to false.
// Each weekday row is its own map.
func DefaultWeeklyHourRanges() map[Weekday]map[HourRange]bool {
	grid := make(map[Weekday]map[HourRange]bool, weekdayCount)
	for _, day := range AllWeekdays() {
		grid[day] = DefaultHourRanges()
	}
	return grid
}
