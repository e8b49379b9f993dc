// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Shivanand-hulikatti/attendee-registry/internal/model"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/repository"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/service"
)

// AttendeeHandler serves the /api/users routes.
type AttendeeHandler struct {
	svc    *service.AttendeeService
	logger *slog.Logger
}

// NewAttendeeHandler constructs an AttendeeHandler.
func NewAttendeeHandler(svc *service.AttendeeService, logger *slog.Logger) *AttendeeHandler {
	return &AttendeeHandler{svc: svc, logger: logger}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeServiceError maps service and store errors onto status codes.
// Anything unrecognised is logged and reported as a 500 with msg.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, msg string) {
	var (
		verr    *model.ValidationError
		enumErr *model.InvalidEnumError
	)
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, model.ErrorResponse{
			Error:   "validation failed",
			Details: verr.Messages(),
		})
	case errors.As(err, &enumErr):
		writeError(w, http.StatusBadRequest, enumErr.Error())
	case errors.Is(err, service.ErrInvalidRequest), errors.Is(err, service.ErrEmptyBatch):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "attendee not found")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		logger.ErrorContext(r.Context(), msg, "error", err)
		writeError(w, http.StatusInternalServerError, msg)
	}
}

// writeViews returns an empty array rather than null for better client
// compatibility.
func writeViews(w http.ResponseWriter, views []model.AttendeeView) {
	if views == nil {
		views = []model.AttendeeView{}
	}
	writeJSON(w, http.StatusOK, views)
}

// ─── Attendee handlers ────────────────────────────────────────────────────────

// Create handles POST /api/users
func (h *AttendeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.AttendeeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeDecodeError(w, err)
		return
	}

	view, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to create attendee")
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// Update handles PUT /api/users/{id}
// Fields left out of the body keep their stored values.
func (h *AttendeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.AttendeeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeDecodeError(w, err)
		return
	}

	view, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to update attendee")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Get handles GET /api/users/{id}
func (h *AttendeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to get attendee")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// List handles GET /api/users
func (h *AttendeeHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to list attendees")
		return
	}
	writeViews(w, views)
}

// ListByRole handles GET /api/users/role/{role}
func (h *AttendeeHandler) ListByRole(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.ListByRole(r.Context(), chi.URLParam(r, "role"))
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to list attendees")
		return
	}
	writeViews(w, views)
}

// ListByLocation handles GET /api/users/location/{location}
func (h *AttendeeHandler) ListByLocation(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.ListByLocation(r.Context(), chi.URLParam(r, "location"))
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to list attendees")
		return
	}
	writeViews(w, views)
}

// Search handles GET /api/users/search?name=
func (h *AttendeeHandler) Search(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.Search(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to search attendees")
		return
	}
	writeViews(w, views)
}

// Delete handles DELETE /api/users/{id}
func (h *AttendeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, h.logger, err, "failed to delete attendee")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteMany handles DELETE /api/users/batch
// The body is a JSON array of attendee ids.
func (h *AttendeeHandler) DeleteMany(w http.ResponseWriter, r *http.Request) {
	var ids []string
	if err := decodeJSON(w, r, &ids); err != nil {
		h.writeDecodeError(w, err)
		return
	}
	if err := h.svc.DeleteMany(r.Context(), ids); err != nil {
		writeServiceError(w, r, h.logger, err, "failed to delete attendees")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeDecodeError reports enum tokens rejected while decoding with the
// enum message, and every other decode failure as a bad body.
func (h *AttendeeHandler) writeDecodeError(w http.ResponseWriter, err error) {
	var enumErr *model.InvalidEnumError
	if errors.As(err, &enumErr) {
		writeError(w, http.StatusBadRequest, enumErr.Error())
		return
	}
	writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
}

// ─── Report handlers ──────────────────────────────────────────────────────────

// ReportHandler serves the /api/reports routes.
type ReportHandler struct {
	svc    *service.ReportService
	logger *slog.Logger
}

// NewReportHandler constructs a ReportHandler.
func NewReportHandler(svc *service.ReportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{svc: svc, logger: logger}
}

// All handles GET /api/reports/all
func (h *ReportHandler) All(w http.ResponseWriter, r *http.Request) {
	rep, err := h.svc.All(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to generate report")
		return
	}
	writeReport(w, rep)
}

// ForRole handles GET /api/reports/role/{role}
func (h *ReportHandler) ForRole(w http.ResponseWriter, r *http.Request) {
	h.serveRole(w, r, chi.URLParam(r, "role"))
}

// Role returns a handler exporting a fixed role, for the plural
// convenience routes such as /api/reports/guests.
func (h *ReportHandler) Role(role model.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.serveRole(w, r, string(role))
	}
}

func (h *ReportHandler) serveRole(w http.ResponseWriter, r *http.Request, token string) {
	rep, err := h.svc.ForRole(r.Context(), token)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to generate report")
		return
	}
	writeReport(w, rep)
}

func writeReport(w http.ResponseWriter, rep *service.Report) {
	w.Header().Set("Content-Type", rep.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+rep.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(rep.Content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(rep.Content)
}

// ─── Admin handlers ───────────────────────────────────────────────────────────

// AdminHandler serves admin login.
type AdminHandler struct {
	svc    *service.AdminService
	logger *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(svc *service.AdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, logger: logger}
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.svc.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to log in")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
