// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/agora/internal/platform/apperr"
	requestutil "github.com/taibuivan/agora/internal/platform/request"
	"github.com/taibuivan/agora/internal/platform/respond"
)

// QueryKeyChannel names the browsed channel. It is not a filter key and is
// never passed to the decoder.
const QueryKeyChannel = "channel"

// EncodedQuery is the response body of the encode endpoint.
type EncodedQuery struct {
	Query string `json:"query"`
}

// FilterLabels is the response body of the labels endpoint.
type FilterLabels struct {
	Tags     string `json:"tags"`
	Channels string `json:"channels"`
}

// Handler exposes the codec over HTTP.
type Handler struct {
	codec *Codec
}

// NewHandler returns a handler backed by codec.
func NewHandler(codec *Codec) *Handler {
	return &Handler{codec: codec}
}

// RegisterRoutes mounts the filter endpoints on router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.decodeFilters)
	router.Get("/criteria", handler.criteria)
	router.Post("/encode", handler.encodeFilters)
	router.Get("/labels", handler.labels)
}

/*
GET /api/v1/events/filters

Description: Decodes the query string into the resolved filter state.
The optional "channel" parameter scopes the result to that channel.
*/
func (handler *Handler) decodeFilters(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	channel := query.Get(QueryKeyChannel)
	query.Del(QueryKeyChannel)

	values, err := handler.codec.DecodeQuery(query, channel)
	if err != nil {
		respond.Error(writer, request, AsAppError(err))
		return
	}
	respond.OK(writer, values)
}

/*
GET /api/v1/events/filters/criteria

Description: Decodes the query string like the filters endpoint and returns
the event-list query it describes: hour buckets expanded to start hours and
the results order as a sort option.
*/
func (handler *Handler) criteria(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	channel := query.Get(QueryKeyChannel)
	query.Del(QueryKeyChannel)

	values, err := handler.codec.DecodeQuery(query, channel)
	if err != nil {
		respond.Error(writer, request, AsAppError(err))
		return
	}
	respond.OK(writer, values.Criteria())
}

/*
POST /api/v1/events/filters/encode

Description: Accepts a filter state and returns its canonical query string.
Fields missing from the body take their decode defaults.
*/
func (handler *Handler) encodeFilters(writer http.ResponseWriter, request *http.Request) {
	values := handler.codec.Defaults(request.URL.Query().Get(QueryKeyChannel))

	if err := requestutil.DecodeValid(request, &values); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, EncodedQuery{Query: EncodeQuery(values).Encode()})
}

// GET /api/v1/events/filters/labels
func (handler *Handler) labels(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	respond.OK(writer, FilterLabels{
		Tags:     TagLabel(query[KeyTags]),
		Channels: ChannelLabel(query[KeyChannels]),
	})
}

// AsAppError converts a [ParameterDecodeError] into a 400 INVALID_PARAMETER.
// Other errors are returned unchanged.
func AsAppError(err error) error {
	var decodeErr *ParameterDecodeError
	if errors.As(err, &decodeErr) {
		return apperr.InvalidParameter(decodeErr.Key, decodeErr.Err)
	}
	return err
}
