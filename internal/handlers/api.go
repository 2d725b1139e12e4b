package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/credentialwatch/alertd/internal/api"
	"github.com/credentialwatch/alertd/internal/services"
)

// APIHandler serves the REST surface of the alert service.
type APIHandler struct {
	alertService *services.AlertService
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(alertService *services.AlertService) *APIHandler {
	return &APIHandler{alertService: alertService}
}

// SetupRoutes configures all REST routes.
func (h *APIHandler) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/alerts", h.handleAlerts)
	mux.HandleFunc("/api/alerts/open", h.handleOpenAlerts)
	mux.HandleFunc("/api/alerts/", h.handleAlertResolve)
	mux.HandleFunc("/api/summary", h.handleSummary)
}

// handleAlerts handles POST /api/alerts
func (h *APIHandler) handleAlerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req api.CreateAlertRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if fieldErrors := api.Validate(req); fieldErrors != nil {
		api.RespondValidationError(w, fieldErrors)
		return
	}

	alert, err := h.alertService.LogAlert(services.LogAlertParams{
		ProviderID:   req.ProviderID,
		CredentialID: req.CredentialID,
		Severity:     req.Severity,
		WindowDays:   req.WindowDays,
		Message:      req.Message,
		Channel:      req.Channel,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	api.RespondJSON(w, http.StatusCreated, alert)
}

// handleOpenAlerts handles GET /api/alerts/open
func (h *APIHandler) handleOpenAlerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var providerID *uint
	if v := r.URL.Query().Get("provider_id"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			api.RespondError(w, http.StatusBadRequest, "provider_id must be an integer")
			return
		}
		id := uint(n)
		providerID = &id
	}

	var severity *string
	if v := r.URL.Query().Get("severity"); v != "" {
		severity = &v
	}

	// Pagination is opt-in; without page/per_page the full ordered
	// sequence is returned.
	if r.URL.Query().Get("page") != "" || r.URL.Query().Get("per_page") != "" {
		params := api.ParsePagination(r)
		alerts, total, err := h.alertService.GetOpenAlertsPage(providerID, severity, params.Offset(), params.PerPage)
		if err != nil {
			h.respondServiceError(w, err)
			return
		}
		api.RespondJSON(w, http.StatusOK, api.PaginatedResponse{
			Data: alerts,
			Pagination: api.PaginationMeta{
				Page:       params.Page,
				PerPage:    params.PerPage,
				Total:      total,
				TotalPages: params.TotalPages(total),
			},
		})
		return
	}

	alerts, err := h.alertService.GetOpenAlerts(providerID, severity)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	api.RespondJSON(w, http.StatusOK, alerts)
}

// handleAlertResolve handles POST /api/alerts/{id}/resolve
func (h *APIHandler) handleAlertResolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/alerts/")
	idPart, ok := strings.CutSuffix(path, "/resolve")
	if !ok {
		api.RespondError(w, http.StatusNotFound, "Not found")
		return
	}

	id, err := strconv.ParseUint(idPart, 10, 32)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, "alert id must be an integer")
		return
	}

	// The body is optional; resolving without a note is valid.
	var req api.ResolveAlertRequest
	if r.ContentLength > 0 {
		if err := api.DecodeJSON(r, &req); err != nil {
			api.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	alert, err := h.alertService.MarkAlertResolved(uint(id), req.ResolutionNote)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	api.RespondJSON(w, http.StatusOK, alert)
}

// handleSummary handles GET /api/summary
func (h *APIHandler) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var windowDays *int
	if v := r.URL.Query().Get("window_days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			api.RespondError(w, http.StatusBadRequest, "window_days must be an integer")
			return
		}
		windowDays = &n
	}

	summary, err := h.alertService.SummarizeAlerts(windowDays)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	api.RespondJSON(w, http.StatusOK, summary)
}

// respondServiceError maps domain errors to response codes. Anything
// unrecognized is a storage fault and surfaces as a 500.
func (h *APIHandler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidSeverity):
		api.RespondErrorWithCode(w, http.StatusBadRequest, "invalid_severity", err.Error())
	case errors.Is(err, services.ErrAlertNotFound):
		api.RespondErrorWithCode(w, http.StatusNotFound, "alert_not_found", err.Error())
	default:
		log.Printf("Alert service error: %v", err)
		api.RespondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
