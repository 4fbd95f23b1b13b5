package api

import (
	"net/http"

	"github.com/alecgard/candor/internal/auth"
	"github.com/alecgard/candor/internal/team"
)

type teamHandler struct {
	svc *team.Service
}

// Members handles GET /api/team/members.
func (h *teamHandler) Members(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.ListMembers(r.Context(), auth.UserFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}
