// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil reads bodies, route parameters and the per-request
identity that middleware placed in the context.

Every failure is already an [apperr.AppError], so handlers pass it straight
to respond.Error.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/agora/internal/platform/apperr"
	"github.com/taibuivan/agora/internal/platform/ctxutil"
	"github.com/taibuivan/agora/internal/platform/sec"
	"github.com/taibuivan/agora/internal/platform/validate"
	"github.com/taibuivan/agora/internal/session"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
DecodeValid decodes the body like [DecodeJSON] and then checks its
`validate` struct tags.
*/
func DecodeValid(request *http.Request, target any) error {
	if err := DecodeJSON(request, target); err != nil {
		return err
	}
	return validate.Struct(target)
}

// ID retrieves a named chi route parameter, e.g. the saved-search id.
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Session returns the session state injected by the auth middleware, or a
// signed-out state when the chain has no authentication in front.
func Session(request *http.Request) *session.State {
	return ctxutil.GetSession(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the user claims.

Returns:
  - *sec.AuthClaims: The authenticated user claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return claims, nil
}

/*
RequiredUserID returns the User ID of the currently logged-in user.

Returns:
  - string: User UUID
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredUserID(request *http.Request) (string, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
