// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/agora/internal/event/search"
)

func TestDefaultGrids_Complete(t *testing.T) {
	weekdays := search.DefaultWeekdays()
	assert.Len(t, weekdays, 7)
	for _, day := range search.AllWeekdays() {
		assert.Contains(t, weekdays, day)
		assert.False(t, weekdays[day])
	}

	hourRanges := search.DefaultHourRanges()
	assert.Len(t, hourRanges, 8)

	weekly := search.DefaultWeeklyHourRanges()
	assert.Len(t, weekly, 7)
	for _, row := range weekly {
		assert.Len(t, row, 8)
	}
}

/*
TestDefaultGrids_NoAliasing verifies that generated grids share no state.
*/
func TestDefaultGrids_NoAliasing(t *testing.T) {
	first := search.DefaultWeekdays()
	first[3] = true
	assert.False(t, search.DefaultWeekdays()[3])

	weekly := search.DefaultWeeklyHourRanges()
	weekly[0][search.HourRange3amTo6am] = true
	assert.False(t, weekly[1][search.HourRange3amTo6am])
	assert.False(t, search.DefaultWeeklyHourRanges()[0][search.HourRange3amTo6am])
}

func TestHourRange_Hours(t *testing.T) {
	tests := []struct {
		bucket search.HourRange
		hours  []int
	}{
		{search.HourRange12amTo3am, []int{0, 1, 2}},
		{search.HourRange3pmTo6pm, []int{15, 16, 17}},
		{search.HourRange9pmTo12am, []int{21, 22, 23}},
		{search.HourRange("2am-4am"), nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.bucket), func(t *testing.T) {
			assert.Equal(t, tt.hours, tt.bucket.Hours())
		})
	}
}

/*
TestHourRange_Coverage verifies that the buckets cover every hour exactly once.
*/
func TestHourRange_Coverage(t *testing.T) {
	var covered []int
	for _, bucket := range search.AllHourRanges() {
		covered = append(covered, bucket.Hours()...)
	}

	want := make([]int, 24)
	for hour := range want {
		want[hour] = hour
	}
	assert.Equal(t, want, covered)
	assert.Nil(t, search.HourRange("noon").Hours())
}

func TestWeekday(t *testing.T) {
	assert.True(t, search.Weekday(0).IsValid())
	assert.True(t, search.Weekday(6).IsValid())
	assert.False(t, search.Weekday(7).IsValid())
	assert.False(t, search.Weekday(-1).IsValid())
	assert.Equal(t, "4", search.Weekday(4).String())
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Tags", search.TagLabel(nil))
	assert.Equal(t, "Tags (2)", search.TagLabel([]string{"a", "b"}))
	assert.Equal(t, "Channels", search.ChannelLabel([]string{}))
	assert.Equal(t, "Channels (3)", search.ChannelLabel([]string{"a", "b", "c"}))
	assert.Equal(t, "6pm-9pm", search.HourRange6pmTo9pm.Label())
}

func TestResultsOrder_Sort(t *testing.T) {
	assert.Equal(t, map[string]string{"startTime": "ASC"}, search.ResultsOrderChronological.Sort())
	assert.Equal(t, map[string]string{"startTime": "DESC"}, search.ResultsOrderReverseChronological.Sort())
	assert.False(t, search.ResultsOrder("random").IsValid())
	assert.False(t, search.LocationFilter("anywhere").IsValid())
}
