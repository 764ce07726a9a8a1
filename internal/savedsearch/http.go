// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package savedsearch

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/agora/internal/platform/request"
	"github.com/taibuivan/agora/internal/platform/respond"
	"github.com/taibuivan/agora/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for saved searches.
//
// Every route reads the owner from the verified token; mount it behind
// [middleware.RequireAuth].
type Handler struct {
	service *Service
}

// NewHandler constructs a new saved-search [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with saved-search endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listSavedSearches)
	router.Post("/", handler.createSavedSearch)
	router.Route("/{id}", func(subRouter chi.Router) {
		subRouter.Get("/", handler.getSavedSearch)
		subRouter.Get("/values", handler.getSavedSearchValues)
		subRouter.Delete("/", handler.deleteSavedSearch)
	})

	return router
}

/*
GET /api/v1/saved-searches.

Request:
  - limit: int
  - page: int

Response:
  - 200: []SavedSearch: Paginated list, newest first
*/
func (handler *Handler) listSavedSearches(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)
	searches, total, err := handler.service.List(request.Context(), ownerID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, searches, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
POST /api/v1/saved-searches.

Request (Body):
  - CreateInput JSON object

Response:
  - 201: SavedSearch: Created object with canonical query
  - 400: VALIDATION_ERROR / INVALID_PARAMETER
  - 409: CONFLICT: Same filter already saved
*/
func (handler *Handler) createSavedSearch(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	saved, err := handler.service.Create(request.Context(), ownerID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, saved)
}

// GET /api/v1/saved-searches/{id}.
func (handler *Handler) getSavedSearch(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	saved, err := handler.service.Get(request.Context(), ownerID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, saved)
}

// GET /api/v1/saved-searches/{id}/values returns the decoded filter state.
func (handler *Handler) getSavedSearchValues(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	values, err := handler.service.Values(request.Context(), ownerID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, values)
}

// DELETE /api/v1/saved-searches/{id}.
func (handler *Handler) deleteSavedSearch(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), ownerID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
