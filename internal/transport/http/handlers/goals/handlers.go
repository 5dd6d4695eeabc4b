package goalhandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrops/internal/domain/audit"
	"hrops/internal/domain/auth"
	"hrops/internal/domain/goal"
	"hrops/internal/transport/http/api"
	"hrops/internal/transport/http/middleware"
	"hrops/internal/transport/http/shared"
)

type Handler struct {
	Service *goal.Service
	Perms   middleware.PermissionStore
	Audit   *audit.Service
}

func NewHandler(svc *goal.Service, perms middleware.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Service: svc, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/performance/goals", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermPerformanceRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermPerformanceWrite, h.Perms)).Post("/", h.handleCreate)
		r.Route("/{goalID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(auth.PermPerformanceRead, h.Perms)).Get("/", h.handleGet)
			r.With(middleware.RequirePermission(auth.PermPerformanceWrite, h.Perms)).Put("/", h.handleUpdate)
			r.With(middleware.RequirePermission(auth.PermPerformanceWrite, h.Perms)).Patch("/progress", h.handleProgress)
			r.With(middleware.RequirePermission(auth.PermPerformanceWrite, h.Perms)).Delete("/", h.handleDelete)
		})
	})
}

type goalPayload struct {
	EmployeeID   string  `json:"employeeId"`
	ManagerID    string  `json:"managerId"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	GoalType     string  `json:"goalType"`
	Priority     string  `json:"priority"`
	TargetValue  float64 `json:"targetValue"`
	Unit         string  `json:"unit"`
	Weight       float64 `json:"weight"`
	StartDate    string  `json:"startDate"`
	DueDate      string  `json:"dueDate"`
	Status       string  `json:"status"`
	CurrentValue float64 `json:"currentValue"`
	Progress     float64 `json:"progress"`
}

func (h *Handler) decodeDetails(w http.ResponseWriter, r *http.Request, reqID string) (goal.Details, bool) {
	var payload goalPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return goal.Details{}, false
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee is required")
	v.Required("title", payload.Title, "title is required")
	v.Enum("category", payload.Category, goal.Categories, "unknown goal category")
	v.Enum("goalType", payload.GoalType, goal.Types, "unknown goal type")
	v.Enum("priority", payload.Priority, goal.Priorities, "unknown goal priority")
	v.Enum("status", payload.Status, goal.Statuses, "unknown goal status")
	start, _ := v.Date("startDate", payload.StartDate)
	due, _ := v.Date("dueDate", payload.DueDate)
	if v.Reject(w, reqID) {
		return goal.Details{}, false
	}

	return goal.Details{
		EmployeeID:   payload.EmployeeID,
		ManagerID:    payload.ManagerID,
		Title:        payload.Title,
		Description:  payload.Description,
		Category:     payload.Category,
		GoalType:     payload.GoalType,
		Priority:     payload.Priority,
		TargetValue:  payload.TargetValue,
		Unit:         payload.Unit,
		Weight:       payload.Weight,
		StartDate:    start,
		DueDate:      due,
		Status:       payload.Status,
		CurrentValue: payload.CurrentValue,
		Progress:     payload.Progress,
	}, true
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	q := r.URL.Query()
	goals, err := h.Service.ListGoals(r.Context(), user.TenantID, q.Get("employeeId"), q.Get("managerId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "goal_list_failed", "failed to list goals", reqID)
		return
	}
	api.Success(w, goals, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	g, err := h.Service.GetGoal(r.Context(), user.TenantID, chi.URLParam(r, "goalID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "goal not found", reqID)
		return
	}
	api.Success(w, g, reqID)
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

	id, err := h.Service.CreateGoal(r.Context(), user.TenantID, details)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "goal_create_failed", "failed to create goal", reqID)
		return
	}

	if err := h.Audit.Record(r.Context(), user.TenantID, user.UserID, "performance.goal.create", "goal", id, reqID, shared.ClientIP(r), nil, details); err != nil {
		slog.Warn("audit performance.goal.create failed", "err", err)
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

	goalID := chi.URLParam(r, "goalID")
	existing, err := h.Service.GetGoal(r.Context(), user.TenantID, goalID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "goal not found", reqID)
		return
	}

	details, ok := h.decodeDetails(w, r, reqID)
	if !ok {
		return
	}
	goal.ApplyDefaults(&details)

	if err := h.Service.UpdateGoal(r.Context(), user.TenantID, goalID, details); err != nil {
		api.Fail(w, http.StatusInternalServerError, "goal_update_failed", "failed to update goal", reqID)
		return
	}

	if err := h.Audit.Record(r.Context(), user.TenantID, user.UserID, "performance.goal.update", "goal", goalID, reqID, shared.ClientIP(r), existing, details); err != nil {
		slog.Warn("audit performance.goal.update failed", "err", err)
	}
	api.Success(w, map[string]string{"id": goalID}, reqID)
}

type progressPayload struct {
	CurrentValue float64 `json:"currentValue"`
	Progress     float64 `json:"progress"`
	Status       string  `json:"status"`
}

func (h *Handler) handleProgress(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload progressPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Enum("status", payload.Status, goal.Statuses, "unknown goal status")
	if payload.Progress < 0 || payload.Progress > 100 {
		v.Add("progress", "progress must be between 0 and 100")
	}
	if v.Reject(w, reqID) {
		return
	}

	goalID := chi.URLParam(r, "goalID")
	if err := h.Service.UpdateProgress(r.Context(), user.TenantID, goalID, payload.CurrentValue, payload.Progress, payload.Status); err != nil {
		api.Fail(w, http.StatusInternalServerError, "goal_progress_failed", "failed to update goal progress", reqID)
		return
	}

	if err := h.Audit.Record(r.Context(), user.TenantID, user.UserID, "performance.goal.progress", "goal", goalID, reqID, shared.ClientIP(r), nil, payload); err != nil {
		slog.Warn("audit performance.goal.progress failed", "err", err)
	}
	api.Success(w, map[string]string{"id": goalID}, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	goalID := chi.URLParam(r, "goalID")
	if err := h.Service.DeleteGoal(r.Context(), user.TenantID, goalID); err != nil {
		api.Fail(w, http.StatusInternalServerError, "goal_delete_failed", "failed to delete goal", reqID)
		return
	}

	if err := h.Audit.Record(r.Context(), user.TenantID, user.UserID, "performance.goal.delete", "goal", goalID, reqID, shared.ClientIP(r), nil, nil); err != nil {
		slog.Warn("audit performance.goal.delete failed", "err", err)
	}
	api.Success(w, map[string]string{"id": goalID, "status": "deleted"}, reqID)
}
