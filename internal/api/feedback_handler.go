package api

import (
	"net/http"

	"github.com/alecgard/candor/internal/auth"
	"github.com/alecgard/candor/internal/feedback"
	"github.com/alecgard/candor/internal/metrics"
	"github.com/go-chi/chi/v5"
)

type feedbackHandler struct {
	svc     *feedback.Service
	metrics *metrics.Metrics
}

func newFeedbackHandler(svc *feedback.Service, m *metrics.Metrics) *feedbackHandler {
	return &feedbackHandler{svc: svc, metrics: m}
}

func (h *feedbackHandler) recorded(r *http.Request, event string, f *feedback.Feedback, detail ...any) {
	if h.metrics != nil {
		h.metrics.IncFeedbackEvent(event)
	}
	auditLog(r, "feedback_"+event, "feedback", f.ID,
		append([]any{"employee_id", f.EmployeeID, "manager_id", f.ManagerID}, detail...)...)
}

// List handles GET /api/feedback.
func (h *feedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context(), auth.UserFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Create handles POST /api/feedback.
func (h *feedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in feedback.CreateFeedbackInput
	if err := readJSON(w, r, &in); err != nil {
		writeInvalidBody(w, err)
		return
	}

	f, err := h.svc.Create(r.Context(), auth.UserFromContext(r.Context()), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.recorded(r, "created", f, "sentiment", string(f.Sentiment))
	writeJSON(w, http.StatusCreated, f)
}

// Update handles PUT /api/feedback/{id}.
func (h *feedbackHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in feedback.UpdateFeedbackInput
	if err := readJSON(w, r, &in); err != nil {
		writeInvalidBody(w, err)
		return
	}

	f, err := h.svc.Update(r.Context(), auth.UserFromContext(r.Context()), id, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.recorded(r, "updated", f)
	writeJSON(w, http.StatusOK, f)
}

// Acknowledge handles POST /api/feedback/{id}/acknowledge.
func (h *feedbackHandler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	f, err := h.svc.Acknowledge(r.Context(), auth.UserFromContext(r.Context()), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.recorded(r, "acknowledged", f)
	writeJSON(w, http.StatusOK, f)
}
