// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"encoding/json"
	"maps"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/taibuivan/agora/pkg/pointer"
)

// # Query Keys

const (
	KeyBeginningOfDateRange = "beginningOfDateRangeISO"
	KeyEndOfDateRange       = "endOfDateRangeISO"
	KeyRadius               = "radius"
	KeyLatitude             = "latitude"
	KeyLongitude            = "longitude"
	KeyTags                 = "tags"
	KeyChannels             = "channels"
	KeySearchInput          = "searchInput"
	KeyShowCanceledEvents   = "showCanceledEvents"
	KeyFree                 = "free"
	KeyResultsOrder         = "resultsOrder"
	KeyLocationFilter       = "locationFilter"
	KeyWeekdays             = "weekdays"
	KeyHourRanges           = "hourRanges"
	KeyWeeklyHourRanges     = "weeklyHourRanges"
)

const (
	// DefaultRadius is the search radius used when the URL carries none.
	DefaultRadius = 500.0

	// defaultRangeYears is the length of the default date range.
	defaultRangeYears = 2

	// isoLayout matches the millisecond ISO-8601 form the client emits.
	isoLayout = "2006-01-02T15:04:05.000Z07:00"
)

// Params is the raw query mapping produced by the routing layer.
//
// Values are expected to be string, []string, a Go numeric type, bool or nil.
// See [FromQuery] for building Params from [url.Values].
type Params map[string]any

// # Codec

// Codec decodes and encodes event-search filters.
//
// The zero value is not usable; construct one with [NewCodec].
type Codec struct {
	now      func() time.Time
	location *time.Location
}

// Option configures a [Codec].
type Option func(*Codec)

// WithClock overrides the clock used to compute the default date range.
func WithClock(now func() time.Time) Option {
	return func(codec *Codec) { codec.now = now }
}

// WithLocation sets the time zone in which "start of today" is computed.
func WithLocation(location *time.Location) Option {
	return func(codec *Codec) {
		if location != nil {
			codec.location = location
		}
	}
}

// NewCodec constructs a [Codec] using the wall clock and the local time zone.
func NewCodec(opts ...Option) *Codec {
	codec := &Codec{now: time.Now, location: time.Local}
	for _, opt := range opts {
		opt(codec)
	}
	return codec
}

var defaultCodec = NewCodec()

// Decode decodes params with the default codec. See [Codec.Decode].
func Decode(params Params, channelScope string) (Values, error) {
	return defaultCodec.Decode(params, channelScope)
}

// decoded holds the accepted parameters before defaults are applied.
type decoded struct {
	begin, end         *string
	radius             *float64
	latitude           *float64
	longitude          *float64
	tags, channels     []string
	searchInput        *string
	showCanceledEvents *bool
	free               *bool
	weekdays           map[Weekday]bool
	hourRanges         map[HourRange]bool
	weeklyHourRanges   map[Weekday]map[HourRange]bool
	resultsOrder       *ResultsOrder
	locationFilter     *LocationFilter
}

/*
Decode turns router query parameters into a fully resolved [Values].

Description: Every recognized key is processed on its own. A value of the
wrong shape is dropped and its field falls back to the default; unknown keys
are ignored. The grid keys (weekdays, hourRanges, weeklyHourRanges) carry JSON
and are the one strict case: invalid JSON fails the whole decode.

Parameters:
  - params: Params (raw query mapping)
  - channelScope: string (unique name of the channel being browsed, or "")

Returns:
  - Values: The resolved filter state
  - error: *ParameterDecodeError for malformed grid JSON
*/
func (codec *Codec) Decode(params Params, channelScope string) (Values, error) {
	var accepted decoded

	// Sorted so the first malformed grid key reported is stable.
	for _, key := range slices.Sorted(maps.Keys(params)) {
		raw := params[key]
		switch key {
		case KeyBeginningOfDateRange:
			if text, ok := codec.asTimestamp(raw); ok {
				accepted.begin = &text
			}
		case KeyEndOfDateRange:
			if text, ok := codec.asTimestamp(raw); ok {
				accepted.end = &text
			}
		case KeyRadius:
			if radius, ok := asNumber(raw); ok && radius >= 0 {
				accepted.radius = &radius
			}
		case KeyLatitude:
			if latitude, ok := asNumber(raw); ok {
				accepted.latitude = &latitude
			}
		case KeyLongitude:
			if longitude, ok := asNumber(raw); ok {
				accepted.longitude = &longitude
			}
		case KeyTags:
			if tags, ok := asStringList(raw); ok {
				accepted.tags = tags
			}
		case KeyChannels:
			if channels, ok := asStringList(raw); ok {
				accepted.channels = channels
			}
		case KeySearchInput:
			if text, ok := raw.(string); ok {
				accepted.searchInput = &text
			}
		case KeyShowCanceledEvents:
			if flag, ok := raw.(bool); ok {
				accepted.showCanceledEvents = &flag
			}
		case KeyFree:
			if flag, ok := raw.(bool); ok {
				accepted.free = &flag
			}
		case KeyResultsOrder:
			if text, ok := raw.(string); ok && ResultsOrder(text).IsValid() {
				accepted.resultsOrder = pointer.To(ResultsOrder(text))
			}
		case KeyLocationFilter:
			if text, ok := raw.(string); ok && LocationFilter(text).IsValid() {
				accepted.locationFilter = pointer.To(LocationFilter(text))
			}
		case KeyWeekdays:
			grid, err := decodeWeekdays(key, raw)
			if err != nil {
				return Values{}, err
			}
			accepted.weekdays = grid
		case KeyHourRanges:
			grid, err := decodeHourRanges(key, raw)
			if err != nil {
				return Values{}, err
			}
			accepted.hourRanges = grid
		case KeyWeeklyHourRanges:
			grid, err := decodeWeeklyHourRanges(key, raw)
			if err != nil {
				return Values{}, err
			}
			accepted.weeklyHourRanges = grid
		}
	}

	return codec.resolve(accepted, channelScope), nil
}

// Defaults returns the filter state of a URL without filter parameters.
func (codec *Codec) Defaults(channelScope string) Values {
	return codec.resolve(decoded{}, channelScope)
}

// resolve applies the per-call defaults to every field left unset.
func (codec *Codec) resolve(accepted decoded, channelScope string) Values {
	startOfToday := codec.startOfToday()
	defaultBegin := startOfToday.Format(isoLayout)
	defaultEnd := startOfToday.AddDate(defaultRangeYears, 0, 0).Format(isoLayout)

	defaultLocationFilter := LocationFilterWithinRadius
	if channelScope != "" {
		defaultLocationFilter = LocationFilterNone
	}

	values := Values{
		BeginningOfDateRangeISO: pointer.Fallback(accepted.begin, defaultBegin),
		EndOfDateRangeISO:       pointer.Fallback(accepted.end, defaultEnd),
		Radius:                  pointer.Fallback(accepted.radius, DefaultRadius),
		Latitude:                pointer.Fallback(accepted.latitude, DefaultPlace.Latitude),
		Longitude:               pointer.Fallback(accepted.longitude, DefaultPlace.Longitude),
		Tags:                    orEmpty(accepted.tags),
		Channels:                orEmpty(accepted.channels),
		SearchInput:             pointer.Val(accepted.searchInput),
		ShowCanceledEvents:      pointer.Val(accepted.showCanceledEvents),
		Free:                    pointer.Val(accepted.free),
		Weekdays:                accepted.weekdays,
		HourRanges:              accepted.hourRanges,
		WeeklyHourRanges:        accepted.weeklyHourRanges,
		ResultsOrder:            pointer.Fallback(accepted.resultsOrder, ResultsOrderChronological),
		LocationFilter:          pointer.Fallback(accepted.locationFilter, defaultLocationFilter),
	}

	if values.Weekdays == nil {
		values.Weekdays = DefaultWeekdays()
	}
	if values.HourRanges == nil {
		values.HourRanges = DefaultHourRanges()
	}
	if values.WeeklyHourRanges == nil {
		values.WeeklyHourRanges = DefaultWeeklyHourRanges()
	}

	// Both ends parsed at accept time; defaults always parse.
	begin, _ := ParseTimestamp(values.BeginningOfDateRangeISO, codec.location)
	end, _ := ParseTimestamp(values.EndOfDateRangeISO, codec.location)
	if begin.After(end) {
		switch {
		case accepted.begin != nil && accepted.end != nil:
			values.BeginningOfDateRangeISO, values.EndOfDateRangeISO = values.EndOfDateRangeISO, values.BeginningOfDateRangeISO
		case accepted.begin != nil:
			// An explicit end of the range is never moved; the default one is.
			values.EndOfDateRangeISO = begin.AddDate(defaultRangeYears, 0, 0).Format(isoLayout)
		default:
			values.BeginningOfDateRangeISO = end.AddDate(-defaultRangeYears, 0, 0).Format(isoLayout)
		}
	}

	return values
}

func (codec *Codec) startOfToday() time.Time {
	now := codec.now().In(codec.location)
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, codec.location)
}

// # Shape Gates

// ParseTimestamp parses an ISO-8601 timestamp (RFC 3339) or a bare date.
// A bare date is midnight in location.
func ParseTimestamp(text string, location *time.Location) (time.Time, error) {
	at, err := time.Parse(time.RFC3339, text)
	if err == nil {
		return at, nil
	}
	return time.ParseInLocation(time.DateOnly, text, location)
}

// asTimestamp accepts a string that [ParseTimestamp] understands.
// The original text is kept so the value survives a round trip unchanged.
func (codec *Codec) asTimestamp(raw any) (string, bool) {
	text, ok := raw.(string)
	if !ok {
		return "", false
	}
	if _, err := ParseTimestamp(text, codec.location); err != nil {
		return "", false
	}
	return text, true
}

// asNumber accepts any finite Go numeric value.
func asNumber(raw any) (float64, bool) {
	var number float64
	switch value := raw.(type) {
	case float64:
		number = value
	case float32:
		number = float64(value)
	case int:
		number = float64(value)
	case int8:
		number = float64(value)
	case int16:
		number = float64(value)
	case int32:
		number = float64(value)
	case int64:
		number = float64(value)
	case uint:
		number = float64(value)
	case uint8:
		number = float64(value)
	case uint16:
		number = float64(value)
	case uint32:
		number = float64(value)
	case uint64:
		number = float64(value)
	case json.Number:
		parsed, err := value.Float64()
		if err != nil {
			return 0, false
		}
		number = parsed
	default:
		return 0, false
	}
	if math.IsNaN(number) || math.IsInf(number, 0) {
		return 0, false
	}
	return number, true
}

// asStringList accepts a single string or a list made only of strings.
func asStringList(raw any) ([]string, bool) {
	switch value := raw.(type) {
	case string:
		return []string{value}, true
	case []string:
		return orEmpty(append([]string(nil), value...)), true
	case []any:
		list := make([]string, 0, len(value))
		for _, item := range value {
			text, ok := item.(string)
			if !ok {
				return nil, false
			}
			list = append(list, text)
		}
		return list, true
	}
	return nil, false
}

func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

// # Grid Decoding

// gridCondition is one entry of a grid parameter. Only the fields relevant
// to the parameter being decoded are read.
type gridCondition struct {
	DayOfWeek json.RawMessage   `json:"startTimeDayOfWeek"`
	HourOfDay json.RawMessage   `json:"startTimeHourOfDay"`
	And       []json.RawMessage `json:"AND"`
}

// gridEntries parses the JSON array carried by a grid parameter.
//
// A non-string value yields (nil, false, nil) and the grid keeps its default.
// Valid JSON that is not an array yields an empty, present grid.
func gridEntries(key string, raw any) ([]gridCondition, bool, error) {
	text, ok := raw.(string)
	if !ok {
		return nil, false, nil
	}

	var document any
	if err := json.Unmarshal([]byte(text), &document); err != nil {
		return nil, false, &ParameterDecodeError{Key: key, Err: err}
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, true, nil
	}

	entries := make([]gridCondition, 0, len(items))
	for _, item := range items {
		var entry gridCondition
		if err := json.Unmarshal(item, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, true, nil
}

func decodeWeekdays(key string, raw any) (map[Weekday]bool, error) {
	entries, present, err := gridEntries(key, raw)
	if err != nil || !present {
		return nil, err
	}

	weekdays := DefaultWeekdays()
	for _, entry := range entries {
		if day, ok := parseWeekday(entry.DayOfWeek); ok {
			weekdays[day] = true
		}
	}
	return weekdays, nil
}

func decodeHourRanges(key string, raw any) (map[HourRange]bool, error) {
	entries, present, err := gridEntries(key, raw)
	if err != nil || !present {
		return nil, err
	}

	hourRanges := DefaultHourRanges()
	for _, entry := range entries {
		if bucket, ok := parseHourRange(entry.HourOfDay); ok {
			hourRanges[bucket] = true
		}
	}
	return hourRanges, nil
}

func decodeWeeklyHourRanges(key string, raw any) (map[Weekday]map[HourRange]bool, error) {
	entries, present, err := gridEntries(key, raw)
	if err != nil || !present {
		return nil, err
	}

	grid := DefaultWeeklyHourRanges()
	for _, entry := range entries {
		var (
			day       Weekday
			bucket    HourRange
			hasDay    bool
			hasBucket bool
		)
		for _, item := range entry.And {
			var condition gridCondition
			if err := json.Unmarshal(item, &condition); err != nil {
				continue
			}
			if parsed, ok := parseWeekday(condition.DayOfWeek); ok {
				day, hasDay = parsed, true
			}
			if parsed, ok := parseHourRange(condition.HourOfDay); ok {
				bucket, hasBucket = parsed, true
			}
		}
		if hasDay && hasBucket {
			grid[day][bucket] = true
		}
	}
	return grid, nil
}

// parseWeekday accepts "0".."6" or a JSON integer 0..6.
func parseWeekday(raw json.RawMessage) (Weekday, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		index, err := strconv.Atoi(text)
		if err != nil {
			return 0, false
		}
		day := Weekday(index)
		return day, day.IsValid()
	}

	var index int
	if err := json.Unmarshal(raw, &index); err != nil {
		return 0, false
	}
	day := Weekday(index)
	return day, day.IsValid()
}

// parseHourRange accepts a known bucket identifier. Unknown ones are ignored.
func parseHourRange(raw json.RawMessage) (HourRange, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return "", false
	}
	bucket := HourRange(text)
	return bucket, bucket.IsValid()
}
