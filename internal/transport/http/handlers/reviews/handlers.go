package reviewhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"hrops/internal/domain/audit"
	"hrops/internal/domain/auth"
	"hrops/internal/domain/review"
	"hrops/internal/transport/http/api"
	"hrops/internal/transport/http/middleware"
	"hrops/internal/transport/http/shared"
)

type Handler struct {
	Service *review.Service
	Perms   middleware.PermissionStore
	Audit   *audit.Service
}

func NewHandler(svc *review.Service, perms middleware.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Service: svc, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/performance/reviews", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermPerformanceRead, h.Perms)).Get("/", h.handleList)
		r.Route("/{reviewID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(auth.PermPerformanceRead, h.Perms)).Get("/", h.handleGet)
			r.With(middleware.RequirePermission(auth.PermPerformanceWrite, h.Perms)).Put("/", h.handleSave)
			r.With(middleware.RequirePermission(auth.PermPerformanceWrite, h.Perms)).Patch("/status", h.handleUpdateStatus)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	q := r.URL.Query()
	filter := review.Filter{
		CycleID:    q.Get("cycleId"),
		EmployeeID: q.Get("employeeId"),
		ReviewerID: q.Get("reviewerId"),
		Status:     q.Get("status"),
	}
	assignments, err := h.Service.ListAssignments(r.Context(), user.TenantID, filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "review_list_failed", "failed to list review assignments", reqID)
		return
	}
	api.Success(w, assignments, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	assignment, ratings, summary, err := h.Service.GetAssignment(r.Context(), user.TenantID, chi.URLParam(r, "reviewID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "review assignment not found", reqID)
		return
	}

	api.Success(w, map[string]any{
		"assignment": assignment,
		"ratings":    ratings,
		"summary":    summary,
	}, reqID)
}

type savePayload struct {
	Status           string               `json:"status"`
	OverallRating    *float64             `json:"overallRating"`
	Strengths        string               `json:"strengths"`
	ImprovementAreas string               `json:"improvementAreas"`
	Achievements     string               `json:"achievements"`
	DevelopmentNeeds string               `json:"developmentNeeds"`
	NextPeriodGoals  string               `json:"nextPeriodGoals"`
	Ratings          []review.RatingInput `json:"ratings"`
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload savePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Enum("status", payload.Status, review.Statuses, "unknown review status")
	for _, rating := range payload.Ratings {
		if rating.Name == "" {
			v.Add("ratings", "rating name is required")
		}
		if rating.Category != review.RatingCategoryGoal && rating.Category != review.RatingCategoryCompetency {
			v.Add("ratings", "rating category must be goal or competency")
		}
	}
	if v.Reject(w, reqID) {
		return
	}

	// Same sign-off gate as the status endpoint; Save may carry a status too.
	if payload.Status == review.StatusReviewed {
		allowed, err := h.Perms.HasPermission(r.Context(), user.RoleID, auth.PermPerformanceReview)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "permission_check_failed", "failed to check permissions", reqID)
			return
		}
		if !allowed {
			api.Fail(w, http.StatusForbidden, "forbidden", "sign-off requires the review permission", reqID)
			return
		}
	}

	reviewID := chi.URLParam(r, "reviewID")
	actorEmployeeID, err := h.Service.EmployeeIDByUserID(r.Context(), user.TenantID, user.UserID)
	if err != nil {
		actorEmployeeID = ""
	}

	input := review.SaveInput{
		Status:           payload.Status,
		OverallRating:    payload.OverallRating,
		Strengths:        payload.Strengths,
		ImprovementAreas: payload.ImprovementAreas,
		Achievements:     payload.Achievements,
		DevelopmentNeeds: payload.DevelopmentNeeds,
		NextPeriodGoals:  payload.NextPeriodGoals,
		Ratings:          payload.Ratings,
	}
	err = h.Service.Save(r.Context(), user.TenantID, reviewID, actorEmployeeID, auth.IsHR(user.RoleName), input)
	switch {
	case errors.Is(err, review.ErrNotReviewer):
		api.Fail(w, http.StatusForbidden, "forbidden", "only the assigned reviewer may edit this review", reqID)
		return
	case errors.Is(err, pgx.ErrNoRows):
		api.Fail(w, http.StatusNotFound, "not_found", "review assignment not found", reqID)
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "review_save_failed", "failed to save review", reqID)
		return
	}

	if err := h.Audit.Record(r.Context(), user.TenantID, user.UserID, "performance.review.save", "review_assignment", reviewID, reqID, shared.ClientIP(r), nil, payload); err != nil {
		slog.Warn("audit performance.review.save failed", "err", err)
	}
	api.Success(w, map[string]string{"id": reviewID}, reqID)
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
	v.Enum("status", payload.Status, review.Statuses, "unknown review status")
	if v.Reject(w, reqID) {
		return
	}

	// Marking a review as reviewed is the manager sign-off step; it needs
	// the review permission on top of the write permission the route checks.
	if payload.Status == review.StatusReviewed {
		allowed, err := h.Perms.HasPermission(r.Context(), user.RoleID, auth.PermPerformanceReview)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "permission_check_failed", "failed to check permissions", reqID)
			return
		}
		if !allowed {
			api.Fail(w, http.StatusForbidden, "forbidden", "sign-off requires the review permission", reqID)
			return
		}
	}

	reviewID := chi.URLParam(r, "reviewID")
	actorEmployeeID, err := h.Service.EmployeeIDByUserID(r.Context(), user.TenantID, user.UserID)
	if err != nil {
		actorEmployeeID = ""
	}

	err = h.Service.UpdateStatus(r.Context(), user.TenantID, reviewID, actorEmployeeID, auth.IsHR(user.RoleName), payload.Status)
	switch {
	case errors.Is(err, review.ErrNotReviewer):
		api.Fail(w, http.StatusForbidden, "forbidden", "only the assigned reviewer may edit this review", reqID)
		return
	case errors.Is(err, pgx.ErrNoRows):
		api.Fail(w, http.StatusNotFound, "not_found", "review assignment not found", reqID)
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "review_status_failed", "failed to update review status", reqID)
		return
	}

	if err := h.Audit.Record(r.Context(), user.TenantID, user.UserID, "performance.review.status", "review_assignment", reviewID, reqID, shared.ClientIP(r), nil, payload); err != nil {
		slog.Warn("audit performance.review.status failed", "err", err)
	}
	api.Success(w, map[string]string{"id": reviewID, "status": payload.Status}, reqID)
}
