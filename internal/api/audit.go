package api

import (
	"log/slog"
	"net/http"

	"github.com/alecgard/candor/internal/auth"
	"github.com/alecgard/candor/internal/ratelimit"
)

// auditLog emits a structured audit entry for a login or feedback mutation.
func auditLog(r *http.Request, action, resourceType, resourceID string, detail ...any) {
	attrs := []any{
		"action", action,
		"resource_type", resourceType,
		"resource_id", resourceID,
		"ip", ratelimit.ClientIP(r),
		"request_id", RequestIDFromContext(r.Context()),
	}

	if u := auth.UserFromContext(r.Context()); u != nil {
		attrs = append(attrs, "user_id", u.ID, "user_role", u.Role.String())
	}

	attrs = append(attrs, detail...)
	slog.Info("audit", attrs...)
}
