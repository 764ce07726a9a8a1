// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package persist

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/agora/internal/cache/normalized"
	"github.com/taibuivan/agora/internal/platform/apperr"
	requestutil "github.com/taibuivan/agora/internal/platform/request"
	"github.com/taibuivan/agora/internal/platform/respond"
	"github.com/taibuivan/agora/internal/platform/validate"
	"github.com/taibuivan/agora/pkg/convert"
)

// Persister saves and restores a store. [RedisPersister] implements it.
type Persister interface {
	Save(context context.Context, store *normalized.Store) error
	Load(context context.Context, store *normalized.Store) error
	Clear(context context.Context) error
}

// Stats is the response body of the cache summary endpoint.
type Stats struct {
	Entities int `json:"entities"`
}

// WriteResult is the response body of an entity write.
type WriteResult struct {
	Result any `json:"result"`
}

// # Handler Implementation

// Handler exposes the normalized store and its snapshot for administration.
// Mount it behind an admin role check.
type Handler struct {
	store     *normalized.Store
	persister Persister
}

// NewHandler constructs a new cache admin [Handler].
func NewHandler(store *normalized.Store, persister Persister) *Handler {
	return &Handler{store: store, persister: persister}
}

// Routes returns a [chi.Router] configured with cache admin endpoints.
//
// Entity ids contain characters such as ':' and '"', so they travel in the
// "id" query parameter rather than the path.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.stats)
	router.Post("/query", handler.writeQuery)

	router.Route("/entities", func(entities chi.Router) {
		entities.Post("/", handler.writeEntity)
		entities.Get("/", handler.readEntity)
		entities.Delete("/", handler.evictEntity)
		entities.Post("/tags", handler.attachTags)
	})

	router.Route("/snapshot", func(snapshot chi.Router) {
		snapshot.Post("/", handler.saveSnapshot)
		snapshot.Post("/restore", handler.restoreSnapshot)
		snapshot.Delete("/", handler.clearSnapshot)
	})

	return router
}

// GET /api/v1/admin/cache
func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, Stats{Entities: handler.store.Len()})
}

/*
POST /api/v1/admin/cache/entities.

Description: Normalizes a response object into the store under the merge
policy table.

Request (Body):
  - JSON object carrying __typename

Response:
  - 200: WriteResult: Ref of the written entity or the embedded object
  - 400: VALIDATION_ERROR: Missing __typename
*/
func (handler *Handler) writeEntity(writer http.ResponseWriter, request *http.Request) {
	var obj map[string]any
	if err := requestutil.DecodeJSON(request, &obj); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.store.Write(obj)
	if err != nil {
		respond.Error(writer, request, storeError(err))
		return
	}
	respond.OK(writer, WriteResult{Result: result})
}

/*
POST /api/v1/admin/cache/query

Description: Merges the fields of a query response into the root query entity.
Nested entities are normalized like any other write.

Response:
  - 200: Stats: Entity count after the write
*/
func (handler *Handler) writeQuery(writer http.ResponseWriter, request *http.Request) {
	var fields map[string]any
	if err := requestutil.DecodeJSON(request, &fields); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.store.WriteQuery(fields)
	respond.OK(writer, Stats{Entities: handler.store.Len()})
}

// GET /api/v1/admin/cache/entities?id=...&resolve=true
func (handler *Handler) readEntity(writer http.ResponseWriter, request *http.Request) {
	id, err := entityID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, ok := handler.store.Read(id)
	if !ok {
		respond.Error(writer, request, apperr.NotFound("Cache entity"))
		return
	}

	if convert.ToBool(request.URL.Query().Get("resolve")) {
		respond.OK(writer, handler.store.Resolve(normalized.Ref{ID: id}))
		return
	}
	respond.OK(writer, entity)
}

// DELETE /api/v1/admin/cache/entities?id=...
func (handler *Handler) evictEntity(writer http.ResponseWriter, request *http.Request) {
	id, err := entityID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if !handler.store.Evict(id) {
		respond.Error(writer, request, apperr.NotFound("Cache entity"))
		return
	}
	respond.NoContent(writer)
}

/*
POST /api/v1/admin/cache/entities/tags?id=...&field=Tags.

Description: Attaches tags to a list field, skipping tags whose text is
already present and placing new tags first.

Request (Body):
  - []Tag JSON objects carrying "text"
*/
func (handler *Handler) attachTags(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	field := query.Get("field")
	if field == "" {
		field = "Tags"
	}

	err := new(validate.Validator).
		Required("id", query.Get("id")).
		Custom("field", field == normalized.TypenameField, "Must name a list field").
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	id := normalized.EntityID(query.Get("id"))

	var tags []map[string]any
	if err := requestutil.DecodeJSON(request, &tags); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := normalized.AttachTags(handler.store, id, field, tags); err != nil {
		respond.Error(writer, request, storeError(err))
		return
	}

	value, _ := handler.store.ReadField(field, id)
	respond.OK(writer, handler.store.Resolve(value))
}

// POST /api/v1/admin/cache/snapshot
func (handler *Handler) saveSnapshot(writer http.ResponseWriter, request *http.Request) {
	if err := handler.persister.Save(request.Context(), handler.store); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, Stats{Entities: handler.store.Len()})
}

// POST /api/v1/admin/cache/snapshot/restore
func (handler *Handler) restoreSnapshot(writer http.ResponseWriter, request *http.Request) {
	if err := handler.persister.Load(request.Context(), handler.store); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, Stats{Entities: handler.store.Len()})
}

// DELETE /api/v1/admin/cache/snapshot
func (handler *Handler) clearSnapshot(writer http.ResponseWriter, request *http.Request) {
	if err := handler.persister.Clear(request.Context()); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func entityID(request *http.Request) (normalized.EntityID, error) {
	id := request.URL.Query().Get("id")
	if err := new(validate.Validator).Required("id", id).Err(); err != nil {
		return "", err
	}
	return normalized.EntityID(id), nil
}

// storeError maps store failures to client errors.
func storeError(err error) error {
	switch {
	case errors.Is(err, normalized.ErrEntityNotFound):
		return apperr.NotFound("Cache entity")
	case errors.Is(err, normalized.ErrMissingTypename), errors.Is(err, normalized.ErrNotIdentifiable):
		return apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   normalized.TypenameField,
			Message: err.Error(),
		})
	}
	return err
}
