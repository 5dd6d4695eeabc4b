package piphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrops/internal/domain/audit"
	"hrops/internal/domain/auth"
	"hrops/internal/domain/directory"
	"hrops/internal/domain/notifications"
	"hrops/internal/domain/pip"
	"hrops/internal/transport/http/api"
	"hrops/internal/transport/http/middleware"
	"hrops/internal/transport/http/shared"
)

type Handler struct {
	Service   *pip.Service
	Directory *directory.Service
	Notifs    *notifications.Service
	Perms     middleware.PermissionStore
	Audit     *audit.Service
}

func NewHandler(svc *pip.Service, dir *directory.Service, notifs *notifications.Service, perms middleware.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Service: svc, Directory: dir, Notifs: notifs, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/pips", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermPIPRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermPIPWrite, h.Perms)).Post("/", h.handleCreate)
		r.Route("/{planID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(auth.PermPIPRead, h.Perms)).Get("/", h.handleGet)
			r.With(middleware.RequirePermission(auth.PermPIPWrite, h.Perms)).Patch("/status", h.handleUpdateStatus)
			r.With(middleware.RequirePermission(auth.PermPIPWrite, h.Perms)).Post("/notes", h.handleAddNote)
		})
	})
	r.With(middleware.RequirePermission(auth.PermPIPWrite, h.Perms)).Patch("/pip-milestones/{milestoneID}", h.handleUpdateMilestone)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	q := r.URL.Query()
	plans, err := h.Service.ListPlans(r.Context(), user.TenantID, q.Get("employeeId"), q.Get("supervisorId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "pip_list_failed", "failed to list improvement plans", reqID)
		return
	}
	api.Success(w, plans, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	plan, milestones, notes, err := h.Service.GetPlan(r.Context(), user.TenantID, chi.URLParam(r, "planID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "improvement plan not found", reqID)
		return
	}

	api.Success(w, map[string]any{
		"plan":       plan,
		"milestones": milestones,
		"notes":      notes,
	}, reqID)
}

type planPayload struct {
	EmployeeID        string               `json:"employeeId"`
	SupervisorID      string               `json:"supervisorId"`
	Title             string               `json:"title"`
	Severity          string               `json:"severity"`
	PerformanceIssues string               `json:"performanceIssues"`
	ExpectedOutcomes  string               `json:"expectedOutcomes"`
	StartDate         string               `json:"startDate"`
	EndDate           string               `json:"endDate"`
	Milestones        []pip.MilestoneInput `json:"milestones"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload planPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee is required")
	v.Required("supervisorId", payload.SupervisorID, "supervisor is required")
	v.Required("title", payload.Title, "title is required")
	v.Enum("severity", payload.Severity, pip.Severities, "unknown severity")
	start, _ := v.Date("startDate", payload.StartDate)
	end, _ := v.Date("endDate", payload.EndDate)
	for _, m := range payload.Milestones {
		if m.Title == "" {
			v.Add("milestones", "milestone title is required")
		}
	}
	if v.Reject(w, reqID) {
		return
	}

	details := pip.PlanDetails{
		EmployeeID:        payload.EmployeeID,
		SupervisorID:      payload.SupervisorID,
		CreatedBy:         user.UserID,
		Title:             payload.Title,
		Severity:          payload.Severity,
		PerformanceIssues: payload.PerformanceIssues,
		ExpectedOutcomes:  payload.ExpectedOutcomes,
		StartDate:         start,
		EndDate:           end,
	}
	id, err := h.Service.CreatePlan(r.Context(), user.TenantID, details, payload.Milestones)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "pip_create_failed", "failed to create improvement plan", reqID)
		return
	}

	if userID, err := h.Directory.UserIDByEmployeeID(r.Context(), user.TenantID, payload.SupervisorID); err == nil && userID != "" {
		body := "An improvement plan you supervise starts " + start.Format("2006-01-02") + "."
		if err := h.Notifs.Create(r.Context(), user.TenantID, userID, notifications.TypePlanScheduled, "Improvement plan scheduled", body); err != nil {
			slog.Warn("pip schedule notification failed", "err", err)
		}
	}

	if err := h.Audit.Record(r.Context(), user.TenantID, user.UserID, "pip.plan.create", "pip_plan", id, reqID, shared.ClientIP(r), nil, details); err != nil {
		slog.Warn("audit pip.plan.create failed", "err", err)
	}
	api.Created(w, map[string]string{"id": id}, reqID)
}

type planStatusPayload struct {
	Status string `json:"status"`
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload planStatusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("status", payload.Status, "status is required")
	v.Enum("status", payload.Status, pip.Statuses, "unknown plan status")
	if v.Reject(w, reqID) {
		return
	}

	planID := chi.URLParam(r, "planID")
	if err := h.Service.UpdatePlanStatus(r.Context(), user.TenantID, planID, payload.Status); err != nil {
		api.Fail(w, http.StatusInternalServerError, "pip_status_failed", "failed to update plan status", reqID)
		return
	}

	if err := h.Audit.Record(r.Context(), user.TenantID, user.UserID, "pip.plan.status", "pip_plan", planID, reqID, shared.ClientIP(r), nil, payload); err != nil {
		slog.Warn("audit pip.plan.status failed", "err", err)
	}
	api.Success(w, map[string]string{"id": planID, "status": payload.Status}, reqID)
}

type milestonePayload struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

func (h *Handler) handleUpdateMilestone(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload milestonePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("status", payload.Status, "status is required")
	v.Enum("status", payload.Status, pip.MilestoneStatuses, "unknown milestone status")
	if v.Reject(w, reqID) {
		return
	}

	milestoneID := chi.URLParam(r, "milestoneID")
	planID, err := h.Service.MilestonePlanID(r.Context(), user.TenantID, milestoneID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "milestone not found", reqID)
		return
	}

	if err := h.Service.UpdateMilestoneStatus(r.Context(), milestoneID, payload.Status, payload.Notes); err != nil {
		api.Fail(w, http.StatusInternalServerError, "pip_milestone_failed", "failed to update milestone", reqID)
		return
	}

	if err := h.Audit.Record(r.Context(), user.TenantID, user.UserID, "pip.milestone.status", "pip_milestone", milestoneID, reqID, shared.ClientIP(r), nil, payload); err != nil {
		slog.Warn("audit pip.milestone.status failed", "err", err)
	}
	api.Success(w, map[string]string{"id": milestoneID, "planId": planID, "status": payload.Status}, reqID)
}

type notePayload struct {
	Note     string `json:"note"`
	NoteType string `json:"noteType"`
}

func (h *Handler) handleAddNote(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload notePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("note", payload.Note, "note text is required")
	v.Enum("noteType", payload.NoteType, pip.NoteTypes, "unknown note type")
	if v.Reject(w, reqID) {
		return
	}

	planID := chi.URLParam(r, "planID")
	if _, _, _, err := h.Service.GetPlan(r.Context(), user.TenantID, planID); err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "improvement plan not found", reqID)
		return
	}

	authorID, err := h.Directory.EmployeeIDByUserID(r.Context(), user.TenantID, user.UserID)
	if err != nil {
		authorID = ""
	}

	id, err := h.Service.AddNote(r.Context(), planID, payload.Note, payload.NoteType, authorID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "pip_note_failed", "failed to add progress note", reqID)
		return
	}

	if err := h.Audit.Record(r.Context(), user.TenantID, user.UserID, "pip.note.create", "pip_plan", planID, reqID, shared.ClientIP(r), nil, payload); err != nil {
		slog.Warn("audit pip.note.create failed", "err", err)
	}
	api.Created(w, map[string]string{"id": id}, reqID)
}
