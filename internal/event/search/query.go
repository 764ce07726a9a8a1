// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// FromQuery adapts URL query values to [Params].
//
// Every URL value is text, so the adapter coerces by key the way the client
// router does: numeric keys become float64, flag keys become bool and the
// list keys keep every value. A value that fails to coerce stays a string
// and is then dropped by the decoder.
func FromQuery(query url.Values) Params {
	params := make(Params, len(query))
	for key, list := range query {
		if len(list) == 0 {
			continue
		}
		first := list[0]

		switch key {
		case KeyRadius, KeyLatitude, KeyLongitude:
			if number, err := strconv.ParseFloat(first, 64); err == nil {
				params[key] = number
			} else {
				params[key] = first
			}
		case KeyShowCanceledEvents, KeyFree:
			if flag, err := strconv.ParseBool(first); err == nil {
				params[key] = flag
			} else {
				params[key] = first
			}
		case KeyTags, KeyChannels:
			if len(list) == 1 {
				params[key] = first
			} else {
				params[key] = slices.Clone(list)
			}
		default:
			params[key] = first
		}
	}
	return params
}

// DecodeQuery decodes URL query values with the default codec.
func DecodeQuery(query url.Values, channelScope string) (Values, error) {
	return defaultCodec.Decode(FromQuery(query), channelScope)
}

// DecodeQuery decodes URL query values. See [Codec.Decode].
func (codec *Codec) DecodeQuery(query url.Values, channelScope string) (Values, error) {
	return codec.Decode(FromQuery(query), channelScope)
}

// ParseURL decodes the query string of a full URL or of a bare query.
//
// Everything up to the first "?" and from the first "#" is ignored. A
// malformed query string is returned as is from [url.ParseQuery].
func (codec *Codec) ParseURL(raw string, channelScope string) (Values, error) {
	rawQuery := raw
	if index := strings.IndexByte(rawQuery, '?'); index >= 0 {
		rawQuery = rawQuery[index+1:]
	}
	if index := strings.IndexByte(rawQuery, '#'); index >= 0 {
		rawQuery = rawQuery[:index]
	}

	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return Values{}, err
	}
	return codec.DecodeQuery(query, channelScope)
}
