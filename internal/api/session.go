// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"net/http"

	requestutil "github.com/taibuivan/agora/internal/platform/request"
	"github.com/taibuivan/agora/internal/platform/respond"
)

// sessionSnapshot handles GET /api/v1/session.
//
// It reports the session state the auth middleware derived for this request,
// signed out when no bearer token was sent.
func sessionSnapshot(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, requestutil.Session(request).Snapshot())
}
