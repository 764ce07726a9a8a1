// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bytes"
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/agora/internal/event/search"
)

var fixedNow = time.Date(2026, time.October, 19, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func execute(stdin string, argv ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"--timezone", "UTC"}, argv...), strings.NewReader(stdin), &stdout, &stderr, clock)
	return code, stdout.String(), stderr.String()
}

func TestRun_Decode(t *testing.T) {
	code, stdout, stderr := execute("", "decode", "https://agora.example/events?tags=jazz&tags=blues&free=true&weekdays=[{\"startTimeDayOfWeek\":\"6\"}]#top")
	require.Equal(t, 0, code, stderr)

	jsonPart, summaryPart, found := strings.Cut(stdout, "\n\n")
	require.True(t, found)

	var values search.Values
	require.NoError(t, json.Unmarshal([]byte(jsonPart), &values))
	assert.Equal(t, []string{"jazz", "blues"}, values.Tags)
	assert.True(t, values.Free)
	assert.Equal(t, "2026-10-19T00:00:00.000Z", values.BeginningOfDateRangeISO)

	assert.Contains(t, summaryPart, "Filters:  Tags (2), Channels")
	assert.Contains(t, summaryPart, "Days:     Sat")
	assert.Contains(t, summaryPart, "Hours:    any time")
	assert.Contains(t, summaryPart, "Order:    chronological (startTime ASC)")
	assert.Contains(t, summaryPart, "Location: within 500 of")
	assert.Contains(t, summaryPart, "Also:     free only")
	assert.Contains(t, summaryPart, "from now")
}

func TestRun_DecodeChannelQuiet(t *testing.T) {
	code, stdout, _ := execute("", "decode", "--channel", "cats", "-q", "radius=5")
	require.Equal(t, 0, code)

	var values search.Values
	require.NoError(t, json.Unmarshal([]byte(stdout), &values))
	assert.Equal(t, search.LocationFilterNone, values.LocationFilter)
	assert.Equal(t, 5.0, values.Radius)
	assert.NotContains(t, stdout, "Location:")
}

func TestRun_Encode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filters.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"radius":5,"tags":["poetry"]}`), 0o600))

	code, stdout, stderr := execute("", "encode", path)
	require.Equal(t, 0, code, stderr)

	query, err := url.ParseQuery(strings.TrimSpace(stdout))
	require.NoError(t, err)
	assert.Equal(t, "5", query.Get(search.KeyRadius))
	assert.Equal(t, []string{"poetry"}, query[search.KeyTags])
	assert.Equal(t, "2026-10-19T00:00:00.000Z", query.Get(search.KeyBeginningOfDateRange))
}

func TestRun_EncodeStdin(t *testing.T) {
	code, stdout, _ := execute(`{"free":true}`, "encode", "-")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "free=true")
}

func TestRun_Failures(t *testing.T) {
	tests := []struct {
		name   string
		stdin  string
		argv   []string
		code   int
		stderr string
	}{
		{"no_command", "", nil, 2, "a command is required"},
		{"unknown_flag", "", []string{"decode", "--nope", "x"}, 2, "error:"},
		{"missing_input", "", []string{"decode"}, 2, "error:"},
		{"malformed_grid", "", []string{"decode", "weekdays=not-json"}, 1, "weekdays"},
		{"invalid_json", "{", []string{"encode", "-"}, 1, "read filter values"},
		{"invalid_values", `{"latitude":91}`, []string{"encode", "-"}, 1, "latitude"},
		{"missing_file", "", []string{"encode", filepath.Join(os.TempDir(), "agora-missing.json")}, 1, "error:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := execute(tt.stdin, tt.argv...)
			assert.Equal(t, tt.code, code)
			assert.Contains(t, stderr, tt.stderr)
		})
	}
}

func TestSummarize_NarrowedHours(t *testing.T) {
	values, err := search.NewCodec(search.WithClock(clock), search.WithLocation(time.UTC)).Decode(search.Params{}, "")
	require.NoError(t, err)

	values.HourRanges = map[search.HourRange]bool{search.HourRange6pmTo9pm: true}
	values.SearchInput = "open mic"
	values.LocationFilter = search.LocationFilterNone

	lines := strings.Join(summarize(values, fixedNow), "\n")
	assert.Contains(t, lines, "Hours:    6pm-9pm")
	assert.Contains(t, lines, "Location: anywhere")
	assert.Contains(t, lines, `matching "open mic"`)
	assert.Contains(t, lines, "Days:     every day")
}
