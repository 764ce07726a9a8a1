// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"github.com/taibuivan/agora/pkg/pointer"
	"github.com/taibuivan/agora/pkg/slice"
)

// Criteria is the event-list query a [Values] describes: the where clause and
// sort option handed to the event store.
type Criteria struct {
	Where EventWhere        `json:"where"`
	Sort  map[string]string `json:"sort"`
}

// EventWhere mirrors the event filter input of the events API.
// Empty selections are omitted and match everything.
type EventWhere struct {
	StartTimeGTE string `json:"startTime_GTE"`
	StartTimeLTE string `json:"startTime_LTE"`

	StartTimeDayOfWeekIn []string     `json:"startTimeDayOfWeek_IN,omitempty"`
	StartTimeHourOfDayIn []int        `json:"startTimeHourOfDay_IN,omitempty"`
	Or                   []WeeklySlot `json:"OR,omitempty"`

	TagsIn     []string `json:"Tags_SOME_text_IN,omitempty"`
	ChannelsIn []string `json:"EventChannels_SOME_channelUniqueName_IN,omitempty"`

	TitleContains string `json:"title_CONTAINS,omitempty"`
	Free          *bool  `json:"free,omitempty"`
	Canceled      *bool  `json:"canceled,omitempty"`

	Within *Distance `json:"location_LTE,omitempty"`
}

// WeeklySlot matches events on one weekday starting within the listed hours.
type WeeklySlot struct {
	StartTimeDayOfWeek   string `json:"startTimeDayOfWeek"`
	StartTimeHourOfDayIn []int  `json:"startTimeHourOfDay_IN"`
}

// Distance is a radius around a point, in kilometers.
type Distance struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"distance"`
}

// Criteria converts v into the event-list query.
func (v Values) Criteria() Criteria {
	where := EventWhere{
		StartTimeGTE:  v.BeginningOfDateRangeISO,
		StartTimeLTE:  v.EndOfDateRangeISO,
		TagsIn:        v.Tags,
		ChannelsIn:    v.Channels,
		TitleContains: v.SearchInput,
	}

	if days := v.SelectedWeekdays(); len(days) > 0 {
		where.StartTimeDayOfWeekIn = slice.Map(days, Weekday.String)
	}
	for _, bucket := range v.SelectedHourRanges() {
		where.StartTimeHourOfDayIn = append(where.StartTimeHourOfDayIn, bucket.Hours()...)
	}

	for _, day := range AllWeekdays() {
		var hours []int
		for _, bucket := range AllHourRanges() {
			if v.WeeklyHourRanges[day][bucket] {
				hours = append(hours, bucket.Hours()...)
			}
		}
		if len(hours) > 0 {
			where.Or = append(where.Or, WeeklySlot{StartTimeDayOfWeek: day.String(), StartTimeHourOfDayIn: hours})
		}
	}

	if len(where.TagsIn) == 0 {
		where.TagsIn = nil
	}
	if len(where.ChannelsIn) == 0 {
		where.ChannelsIn = nil
	}
	if v.Free {
		where.Free = pointer.To(true)
	}
	if !v.ShowCanceledEvents {
		where.Canceled = pointer.To(false)
	}
	if v.LocationFilter == LocationFilterWithinRadius {
		where.Within = &Distance{Latitude: v.Latitude, Longitude: v.Longitude, Radius: v.Radius}
	}

	return Criteria{Where: where, Sort: v.ResultsOrder.Sort()}
}
