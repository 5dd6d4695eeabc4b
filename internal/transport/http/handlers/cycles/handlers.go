package cyclehandler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrops/internal/domain/audit"
	"hrops/internal/domain/auth"
	"hrops/internal/domain/cycle"
	"hrops/internal/domain/directory"
	"hrops/internal/domain/notifications"
	"hrops/internal/transport/http/api"
	"hrops/internal/transport/http/middleware"
	"hrops/internal/transport/http/shared"
)

type Handler struct {
	Service   *cycle.Service
	Directory *directory.Service
	Notifs    *notifications.Service
	Perms     middleware.PermissionStore
	Audit     *audit.Service
}

func NewHandler(svc *cycle.Service, dir *directory.Service, notifs *notifications.Service, perms middleware.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Service: svc, Directory: dir, Notifs: notifs, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/performance/cycles", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermPerformanceRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermPerformanceAdmin, h.Perms)).Post("/", h.handleCreate)
		r.Route("/{cycleID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(auth.PermPerformanceRead, h.Perms)).Get("/", h.handleGet)
			r.With(middleware.RequirePermission(auth.PermPerformanceAdmin, h.Perms)).Put("/", h.handleUpdate)
			r.With(middleware.RequirePermission(auth.PermPerformanceAdmin, h.Perms)).Patch("/status", h.handleUpdateStatus)
			r.With(middleware.RequirePermission(auth.PermPerformanceAdmin, h.Perms)).Delete("/", h.handleDelete)
			r.With(middleware.RequirePermission(auth.PermPerformanceAdmin, h.Perms)).Post("/assignments", h.handleAssign)
		})
	})
}

type cyclePayload struct {
	Name           string `json:"name"`
	CycleType      string `json:"cycleType"`
	Year           int    `json:"year"`
	PeriodLabel    string `json:"periodLabel"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	ReviewDeadline string `json:"reviewDeadline"`
	Status         string `json:"status"`
	IncludeSelf    bool   `json:"includeSelf"`
	IncludeManager bool   `json:"includeManager"`
	IncludePeer    bool   `json:"includePeer"`
	Include360     bool   `json:"include360"`
}

func (h *Handler) decodeDetails(w http.ResponseWriter, r *http.Request, reqID string) (cycle.Details, bool) {
	var payload cyclePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return cycle.Details{}, false
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Enum("cycleType", payload.CycleType, cycle.Types, "unknown cycle type")
	v.Enum("status", payload.Status, cycle.Statuses, "unknown cycle status")
	start, _ := v.Date("startDate", payload.StartDate)
	end, _ := v.Date("endDate", payload.EndDate)
	deadline, _ := v.Date("reviewDeadline", payload.ReviewDeadline)
	if v.Reject(w, reqID) {
		return cycle.Details{}, false
	}

	return cycle.Details{
		Name:           payload.Name,
		CycleType:      payload.CycleType,
		Year:           payload.Year,
		PeriodLabel:    payload.PeriodLabel,
		StartDate:      start,
		EndDate:        end,
		ReviewDeadline: deadline,
		Status:         payload.Status,
		IncludeSelf:    payload.IncludeSelf,
		IncludeManager: payload.IncludeManager,
		IncludePeer:    payload.IncludePeer,
		Include360:     payload.Include360,
	}, true
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	cycles, err := h.Service.ListCycles(r.Context(), user.TenantID, r.URL.Query().Get("status"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "cycle_list_failed", "failed to list review cycles", reqID)
		return
	}
	api.Success(w, cycles, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	c, err := h.Service.GetCycle(r.Context(), user.TenantID, chi.URLParam(r, "cycleID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "review cycle not found", reqID)
		return
	}
	api.Success(w, c, reqID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	details, ok := h.decodeDetails(w, r, reqID)
	if !ok {
		return
	}

	id, err := h.Service.CreateCycle(r.Context(), user.TenantID, details)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "cycle_create_failed", "failed to create review cycle", reqID)
		return
	}

	if err := h.Audit.Record(r.Context(), user.TenantID, user.UserID, "performance.cycle.create", "review_cycle", id, reqID, shared.ClientIP(r), nil, details); err != nil {
		slog.Warn("audit performance.cycle.create failed", "err", err)
	}
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	cycleID := chi.URLParam(r, "cycleID")
	existing, err := h.Service.GetCycle(r.Context(), user.TenantID, cycleID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "review cycle not found", reqID)
		return
	}

	details, ok := h.decodeDetails(w, r, reqID)
	if !ok {
		return
	}
	if details.Status == "" {
		details.Status = existing.Status
	}

	if err := h.Service.UpdateCycle(r.Context(), user.TenantID, cycleID, details); err != nil {
		api.Fail(w, http.StatusInternalServerError, "cycle_update_failed", "failed to update review cycle", reqID)
		return
	}

	if err := h.Audit.Record(r.Context(), user.TenantID, user.UserID, "performance.cycle.update", "review_cycle", cycleID, reqID, shared.ClientIP(r), existing, details); err != nil {
		slog.Warn("audit performance.cycle.update failed", "err", err)
	}
	api.Success(w, map[string]string{"id": cycleID}, reqID)
}

type statusPayload struct {
	Status string `json:"status"`
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload statusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("status", payload.Status, "status is required")
	v.Enum("status", payload.Status, cycle.Statuses, "unknown cycle status")
	if v.Reject(w, reqID) {
		return
	}

	cycleID := chi.URLParam(r, "cycleID")
	if err := h.Service.UpdateCycleStatus(r.Context(), user.TenantID, cycleID, payload.Status); err != nil {
		api.Fail(w, http.StatusInternalServerError, "cycle_status_failed", "failed to update cycle status", reqID)
		return
	}

	if err := h.Audit.Record(r.Context(), user.TenantID, user.UserID, "performance.cycle.status", "review_cycle", cycleID, reqID, shared.ClientIP(r), nil, payload); err != nil {
		slog.Warn("audit performance.cycle.status failed", "err", err)
	}
	api.Success(w, map[string]string{"id": cycleID, "status": payload.Status}, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	cycleID := chi.URLParam(r, "cycleID")
	if err := h.Service.DeleteCycle(r.Context(), user.TenantID, cycleID); err != nil {
		api.Fail(w, http.StatusInternalServerError, "cycle_delete_failed", "failed to delete review cycle", reqID)
		return
	}

	if err := h.Audit.Record(r.Context(), user.TenantID, user.UserID, "performance.cycle.delete", "review_cycle", cycleID, reqID, shared.ClientIP(r), nil, nil); err != nil {
		slog.Warn("audit performance.cycle.delete failed", "err", err)
	}
	api.Success(w, map[string]string{"id": cycleID, "status": "deleted"}, reqID)
}

type assignPayload struct {
	EmployeeIDs []string `json:"employeeIds"`
}

func (h *Handler) handleAssign(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload assignPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	cycleID := chi.URLParam(r, "cycleID")
	result, created, err := h.Service.Assign(r.Context(), user.TenantID, cycleID, payload.EmployeeIDs)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "cycle_assign_failed", "failed to assign reviews", reqID)
		return
	}

	h.notifyReviewers(r, user.TenantID, cycleID, created)

	if err := h.Audit.Record(r.Context(), user.TenantID, user.UserID, "performance.cycle.assign", "review_cycle", cycleID, reqID, shared.ClientIP(r), nil, result); err != nil {
		slog.Warn("audit performance.cycle.assign failed", "err", err)
	}
	api.Success(w, result, reqID)
}

// notifyReviewers is best effort; a failed notification never fails the
// fan-out that triggered it.
func (h *Handler) notifyReviewers(r *http.Request, tenantID, cycleID string, created []cycle.AssignmentSpec) {
	for _, spec := range created {
		userID, err := h.Directory.UserIDByEmployeeID(r.Context(), tenantID, spec.ReviewerID)
		if err != nil || userID == "" {
			continue
		}
		title := "New review assigned"
		body := fmt.Sprintf("You have a %s review due %s.", spec.ReviewType, spec.DueDate.Format("2006-01-02"))
		if err := h.Notifs.Create(r.Context(), tenantID, userID, notifications.TypeReviewAssigned, title, body); err != nil {
			slog.Warn("review assignment notification failed", "err", err, "cycleId", cycleID)
		}
	}
}
