package api

import "net/http"

// wellKnownManifest is the static JSON manifest for /.well-known/candor.json.
const wellKnownManifest = `{
  "name": "Candor",
  "description": "Manager-to-employee feedback tracking",
  "api_base": "/api",
  "auth": {
    "type": "bearer",
    "header": "Authorization",
    "login": "/api/auth/login"
  },
  "endpoints": {
    "me": "/api/auth/me",
    "feedback": "/api/feedback",
    "feedback_item": "/api/feedback/{id}",
    "acknowledge": "/api/feedback/{id}/acknowledge",
    "team_members": "/api/team/members"
  },
  "health": "/health"
}`

// WellKnownHandler serves the static Candor API manifest.
func WellKnownHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(wellKnownManifest))
}
