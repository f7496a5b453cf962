package handler

import (
	"net/http"

	"clinic-backend/internal/delivery/http/middleware"

	"github.com/google/uuid"
)

// actorFromContext returns the authenticated user's id, or nil on public
// routes.
func actorFromContext(r *http.Request) *uuid.UUID {
	if id, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		return &id
	}
	return nil
}
