package feedbackhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"hrops/internal/domain/audit"
	"hrops/internal/domain/auth"
	"hrops/internal/domain/directory"
	"hrops/internal/domain/feedback"
	"hrops/internal/domain/notifications"
	"hrops/internal/transport/http/api"
	"hrops/internal/transport/http/middleware"
	"hrops/internal/transport/http/shared"
)

type Handler struct {
	Service   *feedback.Service
	Directory *directory.Service
	Notifs    *notifications.Service
	Perms     middleware.PermissionStore
	Audit     *audit.Service
}

func NewHandler(svc *feedback.Service, dir *directory.Service, notifs *notifications.Service, perms middleware.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Service: svc, Directory: dir, Notifs: notifs, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/feedback/requests", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermFeedbackRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermFeedbackWrite, h.Perms)).Post("/", h.handleCreate)
		r.Route("/{requestID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(auth.PermFeedbackRead, h.Perms)).Get("/", h.handleGet)
			r.With(middleware.RequirePermission(auth.PermFeedbackWrite, h.Perms)).Patch("/status", h.handleUpdateStatus)
			r.With(middleware.RequirePermission(auth.PermFeedbackRead, h.Perms)).Get("/responses", h.handleListResponses)
			r.With(middleware.RequirePermission(auth.PermFeedbackWrite, h.Perms)).Post("/responses", h.handleSubmitResponse)
			r.With(middleware.RequirePermission(auth.PermFeedbackWrite, h.Perms)).Post("/responses/start", h.handleStartResponse)
			r.With(middleware.RequirePermission(auth.PermFeedbackRead, h.Perms)).Get("/reminders", h.handleListReminders)
			r.With(middleware.RequirePermission(auth.PermFeedbackWrite, h.Perms)).Post("/reminders", h.handleSendReminder)
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
	requests, err := h.Service.ListRequests(r.Context(), user.TenantID, q.Get("employeeId"), q.Get("status"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "feedback_list_failed", "failed to list feedback requests", reqID)
		return
	}
	api.Success(w, requests, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	request, providers, questions, err := h.Service.GetRequest(r.Context(), user.TenantID, chi.URLParam(r, "requestID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "feedback request not found", reqID)
		return
	}

	api.Success(w, map[string]any{
		"request":   request,
		"providers": providers,
		"questions": questions,
	}, reqID)
}

type createRequestPayload struct {
	EmployeeID  string                   `json:"employeeId"`
	CycleID     string                   `json:"cycleId"`
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Deadline    string                   `json:"deadline"`
	Providers   []feedback.ProviderInput `json:"providers"`
	Questions   []feedback.QuestionInput `json:"questions"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload createRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee is required")
	v.Required("title", payload.Title, "title is required")
	deadline, _ := v.Date("deadline", payload.Deadline)
	for _, p := range payload.Providers {
		if p.ProviderID == "" {
			v.Add("providers", "provider employee id is required")
		}
		v.Enum("providers", p.Relationship, feedback.Relationships, "unknown provider relationship")
	}
	for _, q := range payload.Questions {
		if q.QuestionText == "" {
			v.Add("questions", "question text is required")
		}
		v.Enum("questions", q.QuestionType, feedback.QuestionTypes, "unknown question type")
	}
	if v.Reject(w, reqID) {
		return
	}

	requesterID, err := h.Directory.EmployeeIDByUserID(r.Context(), user.TenantID, user.UserID)
	if err != nil {
		requesterID = ""
	}

	details := feedback.RequestDetails{
		EmployeeID:  payload.EmployeeID,
		CycleID:     payload.CycleID,
		RequesterID: requesterID,
		Title:       payload.Title,
		Description: payload.Description,
		Deadline:    deadline,
	}
	id, err := h.Service.CreateRequest(r.Context(), user.TenantID, details, payload.Providers, payload.Questions)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "feedback_create_failed", "failed to create feedback request", reqID)
		return
	}

	h.notifyProviders(r, user.TenantID, payload.Title, deadline.Format("2006-01-02"), payload.Providers)

	if err := h.Audit.Record(r.Context(), user.TenantID, user.UserID, "feedback.request.create", "feedback_request", id, reqID, shared.ClientIP(r), nil, details); err != nil {
		slog.Warn("audit feedback.request.create failed", "err", err)
	}
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) notifyProviders(r *http.Request, tenantID, title, deadline string, providers []feedback.ProviderInput) {
	for _, p := range providers {
		userID, err := h.Directory.UserIDByEmployeeID(r.Context(), tenantID, p.ProviderID)
		if err != nil || userID == "" {
			continue
		}
		body := fmt.Sprintf("You are invited to give feedback for %q by %s.", title, deadline)
		if err := h.Notifs.Create(r.Context(), tenantID, userID, notifications.TypeFeedbackInvited, "Feedback requested", body); err != nil {
			slog.Warn("feedback invitation notification failed", "err", err)
		}
	}
}

type requestStatusPayload struct {
	Status string `json:"status"`
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload requestStatusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("status", payload.Status, "status is required")
	v.Enum("status", payload.Status, feedback.RequestStatuses, "unknown request status")
	if v.Reject(w, reqID) {
		return
	}

	requestID := chi.URLParam(r, "requestID")
	if err := h.Service.UpdateRequestStatus(r.Context(), user.TenantID, requestID, payload.Status); err != nil {
		api.Fail(w, http.StatusInternalServerError, "feedback_status_failed", "failed to update request status", reqID)
		return
	}

	if err := h.Audit.Record(r.Context(), user.TenantID, user.UserID, "feedback.request.status", "feedback_request", requestID, reqID, shared.ClientIP(r), nil, payload); err != nil {
		slog.Warn("audit feedback.request.status failed", "err", err)
	}
	api.Success(w, map[string]string{"id": requestID, "status": payload.Status}, reqID)
}

func (h *Handler) handleStartResponse(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	providerID, err := h.Directory.EmployeeIDByUserID(r.Context(), user.TenantID, user.UserID)
	if err != nil || providerID == "" {
		api.Fail(w, http.StatusForbidden, "forbidden", "no employee record for this account", reqID)
		return
	}

	requestID := chi.URLParam(r, "requestID")
	err = h.Service.StartResponse(r.Context(), user.TenantID, requestID, providerID)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		api.Fail(w, http.StatusNotFound, "not_found", "feedback request not found", reqID)
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "feedback_start_failed", "failed to start response", reqID)
		return
	}
	api.Success(w, map[string]string{"requestId": requestID, "providerId": providerID}, reqID)
}

type responsePayload struct {
	ProviderID    string            `json:"providerId"`
	Answers       map[string]string `json:"answers"`
	OverallRating *float64          `json:"overallRating"`
	Comments      string            `json:"comments"`
}

func (h *Handler) handleSubmitResponse(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload responsePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	actorEmployeeID, err := h.Directory.EmployeeIDByUserID(r.Context(), user.TenantID, user.UserID)
	if err != nil {
		actorEmployeeID = ""
	}

	// Providers submit for themselves; HR may submit on a provider's behalf.
	providerID := actorEmployeeID
	if payload.ProviderID != "" && payload.ProviderID != actorEmployeeID {
		if !auth.IsHR(user.RoleName) {
			api.Fail(w, http.StatusForbidden, "forbidden", "providers may only submit their own response", reqID)
			return
		}
		providerID = payload.ProviderID
	}
	if providerID == "" {
		api.Fail(w, http.StatusForbidden, "forbidden", "no employee record for this account", reqID)
		return
	}

	requestID := chi.URLParam(r, "requestID")
	input := feedback.ResponseInput{
		Answers:       payload.Answers,
		OverallRating: payload.OverallRating,
		Comments:      payload.Comments,
	}
	err = h.Service.SubmitResponse(r.Context(), user.TenantID, requestID, providerID, input)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		api.Fail(w, http.StatusNotFound, "not_found", "feedback request not found", reqID)
		return
	case errors.Is(err, feedback.ErrNotProvider):
		api.Fail(w, http.StatusNotFound, "not_found", "employee is not a provider on this request", reqID)
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "feedback_submit_failed", "failed to submit response", reqID)
		return
	}

	if err := h.Audit.Record(r.Context(), user.TenantID, user.UserID, "feedback.response.submit", "feedback_request", requestID, reqID, shared.ClientIP(r), nil, map[string]string{"providerId": providerID}); err != nil {
		slog.Warn("audit feedback.response.submit failed", "err", err)
	}
	api.Created(w, map[string]string{"requestId": requestID, "providerId": providerID, "status": feedback.ProviderStatusCompleted}, reqID)
}

func (h *Handler) handleListResponses(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	requestID := chi.URLParam(r, "requestID")
	if _, _, _, err := h.Service.GetRequest(r.Context(), user.TenantID, requestID); err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "feedback request not found", reqID)
		return
	}

	responses, err := h.Service.ListResponses(r.Context(), requestID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "feedback_responses_failed", "failed to list responses", reqID)
		return
	}
	api.Success(w, responses, reqID)
}

type reminderPayload struct {
	ProviderID string `json:"providerId"`
	Message    string `json:"message"`
}

func (h *Handler) handleSendReminder(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload reminderPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("providerId", payload.ProviderID, "provider is required")
	if v.Reject(w, reqID) {
		return
	}

	requestID := chi.URLParam(r, "requestID")
	request, _, _, err := h.Service.GetRequest(r.Context(), user.TenantID, requestID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "feedback request not found", reqID)
		return
	}

	id, err := h.Service.SendReminder(r.Context(), requestID, payload.ProviderID, payload.Message, user.UserID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "feedback_reminder_failed", "failed to send reminder", reqID)
		return
	}

	if userID, err := h.Directory.UserIDByEmployeeID(r.Context(), user.TenantID, payload.ProviderID); err == nil && userID != "" {
		body := fmt.Sprintf("Reminder: feedback for %q is due %s.", request.Title, request.Deadline.Format("2006-01-02"))
		if err := h.Notifs.Create(r.Context(), user.TenantID, userID, notifications.TypeFeedbackReminder, "Feedback reminder", body); err != nil {
			slog.Warn("feedback reminder notification failed", "err", err)
		}
	}

	if err := h.Audit.Record(r.Context(), user.TenantID, user.UserID, "feedback.reminder.send", "feedback_request", requestID, reqID, shared.ClientIP(r), nil, payload); err != nil {
		slog.Warn("audit feedback.reminder.send failed", "err", err)
	}
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleListReminders(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	requestID := chi.URLParam(r, "requestID")
	if _, _, _, err := h.Service.GetRequest(r.Context(), user.TenantID, requestID); err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "feedback request not found", reqID)
		return
	}

	reminders, err := h.Service.ListReminders(r.Context(), requestID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "feedback_reminders_failed", "failed to list reminders", reqID)
		return
	}
	api.Success(w, reminders, reqID)
}
