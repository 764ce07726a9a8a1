// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package savedsearch

import (
	"context"
	"errors"
	"log/slog"
	"net/url"

	"github.com/taibuivan/agora/internal/event/search"
	"github.com/taibuivan/agora/internal/platform/apperr"
	"github.com/taibuivan/agora/internal/platform/dberr"
	"github.com/taibuivan/agora/internal/platform/sec"
	"github.com/taibuivan/agora/internal/platform/validate"
	"github.com/taibuivan/agora/pkg/slug"
	"github.com/taibuivan/agora/pkg/uuid"
)

// ErrDuplicate is returned when the owner already saved the same filter.
var ErrDuplicate = apperr.Conflict("This search is already saved")

// # Service Layer

// Service orchestrates business rules for saved searches.
type Service struct {
	repo   Repository
	codec  *search.Codec
	logger *slog.Logger
}

// NewService constructs a new saved-search [Service].
func NewService(repo Repository, codec *search.Codec, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		codec:  codec,
		logger: logger,
	}
}

/*
Create canonicalizes and stores a new saved search.

Description: The query is decoded with the codec, validated, and encoded
again so that equivalent queries are stored identically. Missing filter
fields are therefore pinned to their defaults at save time.

Parameters:
  - context: context.Context
  - ownerID: string (Authenticated user)
  - input: CreateInput

Returns:
  - *SavedSearch: The stored record
  - error: VALIDATION_ERROR, INVALID_PARAMETER or CONFLICT
*/
func (service *Service) Create(context context.Context, ownerID string, input CreateInput) (*SavedSearch, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	canonical, err := service.Canonicalize(input.Query, input.Channel)
	if err != nil {
		return nil, err
	}

	saved := &SavedSearch{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        input.Name,
		Slug:        slug.From(input.Name),
		Channel:     input.Channel,
		Query:       canonical,
		Fingerprint: sec.Fingerprint(input.Channel, canonical),
	}
	if saved.Slug == "" {
		saved.Slug = fallbackSlug
	}

	// Check first for a friendly error; the unique index still guards races.
	_, err = service.repo.FindByFingerprint(context, ownerID, saved.Fingerprint)
	switch {
	case err == nil:
		return nil, ErrDuplicate
	case !errors.Is(err, dberr.ErrNotFound):
		return nil, err
	}

	if err := service.repo.Create(context, saved); err != nil {
		if errors.Is(err, dberr.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	service.logger.InfoContext(context, "saved_search_created",
		slog.String("id", saved.ID),
		slog.String("owner_id", ownerID),
		slog.String("fingerprint", saved.Fingerprint),
	)
	return saved, nil
}

/*
Canonicalize returns the canonical query string of a raw query.

Parameters:
  - rawQuery: string (Full URL, path with query, or bare query)
  - channel: string (Channel scope, or "")

Returns:
  - string: Encoded query with sorted keys
  - error: INVALID_PARAMETER for malformed grid JSON, VALIDATION_ERROR otherwise
*/
func (service *Service) Canonicalize(rawQuery, channel string) (string, error) {
	values, err := service.codec.ParseURL(rawQuery, channel)
	if err != nil {
		var decodeErr *search.ParameterDecodeError
		if errors.As(err, &decodeErr) {
			return "", search.AsAppError(err)
		}
		return "", validate.FieldFailure(FieldQuery, "Must be a valid URL query string")
	}

	if err := validate.Struct(values); err != nil {
		return "", err
	}
	return search.EncodeQuery(values).Encode(), nil
}

// List returns a page of the owner's saved searches and the total count.
func (service *Service) List(context context.Context, ownerID string, limit, offset int) ([]*SavedSearch, int, error) {
	return service.repo.List(context, ownerID, limit, offset)
}

// Get returns one saved search of the owner.
func (service *Service) Get(context context.Context, ownerID, id string) (*SavedSearch, error) {
	if err := new(validate.Validator).UUID("id", id).Err(); err != nil {
		return nil, err
	}
	return service.repo.FindByID(context, ownerID, id)
}

/*
Values decodes a saved search back into its filter state.

Returns:
  - search.Values: Resolved filter state
  - error: Retrieval failures
*/
func (service *Service) Values(context context.Context, ownerID, id string) (search.Values, error) {
	saved, err := service.Get(context, ownerID, id)
	if err != nil {
		return search.Values{}, err
	}

	query, err := url.ParseQuery(saved.Query)
	if err != nil {
		return search.Values{}, apperr.Internal(err)
	}

	values, err := service.codec.DecodeQuery(query, saved.Channel)
	if err != nil {
		return search.Values{}, apperr.Internal(err)
	}
	return values, nil
}

// Delete removes one saved search of the owner.
func (service *Service) Delete(context context.Context, ownerID, id string) error {
	if err := new(validate.Validator).UUID("id", id).Err(); err != nil {
		return err
	}

	if err := service.repo.Delete(context, ownerID, id); err != nil {
		return err
	}

	service.logger.InfoContext(context, "saved_search_deleted",
		slog.String("id", id),
		slog.String("owner_id", ownerID),
	)
	return nil
}
