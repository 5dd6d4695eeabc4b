package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"hrops/internal/domain/auth"
	"hrops/internal/platform/config"
)

// The journey tests run against a real database and exercise the public API
// end to end. They are skipped unless TEST_DATABASE_URL is set.

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := config.Load()
	cfg.DatabaseURL = dbURL
	cfg.JWTSecret = "journey-test-secret"
	cfg.Environment = "development"
	cfg.RunMigrations = true
	cfg.RunSeed = true
	cfg.SeedTenantName = "Journey Tenant"
	cfg.SeedAdminEmail = "admin@journey.test"
	cfg.SeedAdminPassword = "journey-password"
	cfg.MigrationsDir = "../../../migrations"
	cfg.ReportsDir = t.TempDir()
	cfg.RateLimitPerMinute = 100000

	app, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("app setup failed: %v", err)
	}
	t.Cleanup(app.Close)
	return app
}

func doJSON(t *testing.T, app *App, method, path, token string, payload any) (int, envelope) {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: decode envelope: %v (body %s)", method, path, err, rec.Body.String())
		}
	}
	return rec.Code, env
}

func login(t *testing.T, app *App) string {
	t.Helper()
	code, env := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "admin@journey.test",
		"password": "journey-password",
	})
	if code != http.StatusOK {
		t.Fatalf("login failed with status %d", code)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil || out.Token == "" {
		t.Fatalf("login returned no token: %v", err)
	}
	return out.Token
}

func createEmployee(t *testing.T, app *App, token, managerID string) string {
	t.Helper()
	payload := map[string]string{
		"firstName": "Test",
		"lastName":  "Employee",
		"email":     uuid.NewString() + "@journey.test",
		"jobTitle":  "Engineer",
	}
	if managerID != "" {
		payload["managerId"] = managerID
	}
	code, env := doJSON(t, app, http.MethodPost, "/api/v1/employees", token, payload)
	if code != http.StatusCreated {
		t.Fatalf("employee create failed with status %d", code)
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil || out.ID == "" {
		t.Fatalf("employee create returned no id: %v", err)
	}
	return out.ID
}

func createCycle(t *testing.T, app *App, token string) string {
	t.Helper()
	deadline := time.Now().AddDate(0, 1, 0).Format("2006-01-02")
	code, env := doJSON(t, app, http.MethodPost, "/api/v1/performance/cycles", token, map[string]any{
		"name":           "Journey Cycle " + uuid.NewString()[:8],
		"cycleType":      "quarterly",
		"year":           time.Now().Year(),
		"periodLabel":    "Q3",
		"startDate":      time.Now().Format("2006-01-02"),
		"endDate":        deadline,
		"reviewDeadline": deadline,
		"status":         "active",
		"includeSelf":    true,
		"includeManager": true,
	})
	if code != http.StatusCreated {
		t.Fatalf("cycle create failed with status %d", code)
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil || out.ID == "" {
		t.Fatalf("cycle create returned no id: %v", err)
	}
	return out.ID
}

func TestAssignmentFanOutIsIdempotent(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	manager := createEmployee(t, app, token, "")
	report := createEmployee(t, app, token, manager)
	cycleID := createCycle(t, app, token)

	assign := func() (int, int, int) {
		code, env := doJSON(t, app, http.MethodPost, "/api/v1/performance/cycles/"+cycleID+"/assignments", token, map[string]any{
			"employeeIds": []string{manager, report},
		})
		if code != http.StatusOK {
			t.Fatalf("assign failed with status %d", code)
		}
		var out struct {
			Planned int `json:"planned"`
			Created int `json:"created"`
			Skipped int `json:"skipped"`
		}
		if err := json.Unmarshal(env.Data, &out); err != nil {
			t.Fatalf("decode assign result: %v", err)
		}
		return out.Planned, out.Created, out.Skipped
	}

	// Manager gets a self review; the report gets self + manager.
	planned, created, skipped := assign()
	if planned != 3 || created != 3 || skipped != 0 {
		t.Fatalf("first assign: got planned=%d created=%d skipped=%d", planned, created, skipped)
	}

	planned, created, skipped = assign()
	if planned != 3 || created != 0 || skipped != 3 {
		t.Fatalf("second assign: got planned=%d created=%d skipped=%d", planned, created, skipped)
	}

	code, env := doJSON(t, app, http.MethodGet, "/api/v1/performance/reviews?cycleId="+cycleID, token, nil)
	if code != http.StatusOK {
		t.Fatalf("list assignments failed with status %d", code)
	}
	var assignments []struct {
		ID         string `json:"id"`
		EmployeeID string `json:"employeeId"`
		ReviewerID string `json:"reviewerId"`
		ReviewType string `json:"reviewType"`
		Status     string `json:"status"`
		DueDate    string `json:"dueDate"`
	}
	if err := json.Unmarshal(env.Data, &assignments); err != nil {
		t.Fatalf("decode assignments: %v", err)
	}
	if len(assignments) != 3 {
		t.Fatalf("expected 3 assignments, got %d", len(assignments))
	}
	for _, a := range assignments {
		if a.Status != "not_started" {
			t.Fatalf("expected not_started, got %s", a.Status)
		}
		if a.DueDate == "" {
			t.Fatal("expected due date set from cycle deadline")
		}
	}
}

func TestReviewSaveReplacesRatings(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	manager := createEmployee(t, app, token, "")
	report := createEmployee(t, app, token, manager)
	cycleID := createCycle(t, app, token)

	code, _ := doJSON(t, app, http.MethodPost, "/api/v1/performance/cycles/"+cycleID+"/assignments", token, map[string]any{
		"employeeIds": []string{manager, report},
	})
	if code != http.StatusOK {
		t.Fatalf("assign failed with status %d", code)
	}

	code, env := doJSON(t, app, http.MethodGet, "/api/v1/performance/reviews?cycleId="+cycleID+"&status=not_started", token, nil)
	if code != http.StatusOK {
		t.Fatalf("list failed with status %d", code)
	}
	var assignments []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &assignments); err != nil || len(assignments) == 0 {
		t.Fatalf("expected assignments: %v", err)
	}
	reviewID := assignments[0].ID

	rating := func(name string, value float64) map[string]any {
		return map[string]any{
			"category": "competency",
			"name":     name,
			"value":    value,
			"maxValue": 5,
			"weight":   1,
		}
	}

	code, _ = doJSON(t, app, http.MethodPut, "/api/v1/performance/reviews/"+reviewID, token, map[string]any{
		"status":    "in_progress",
		"strengths": "first pass",
		"ratings":   []map[string]any{rating("communication", 4), rating("delivery", 3), rating("ownership", 5)},
	})
	if code != http.StatusOK {
		t.Fatalf("first save failed with status %d", code)
	}

	code, _ = doJSON(t, app, http.MethodPut, "/api/v1/performance/reviews/"+reviewID, token, map[string]any{
		"status":  "submitted",
		"ratings": []map[string]any{rating("communication", 5), rating("delivery", 4)},
	})
	if code != http.StatusOK {
		t.Fatalf("second save failed with status %d", code)
	}

	code, env = doJSON(t, app, http.MethodGet, "/api/v1/performance/reviews/"+reviewID, token, nil)
	if code != http.StatusOK {
		t.Fatalf("get failed with status %d", code)
	}
	var detail struct {
		Assignment struct {
			Status      string `json:"status"`
			SubmittedAt string `json:"submittedAt"`
		} `json:"assignment"`
		Ratings []struct {
			Name  string  `json:"name"`
			Value float64 `json:"value"`
		} `json:"ratings"`
		Summary struct {
			RatingCount   int      `json:"ratingCount"`
			AverageRating *float64 `json:"averageRating"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(env.Data, &detail); err != nil {
		t.Fatalf("decode review detail: %v", err)
	}
	if detail.Summary.RatingCount != 2 {
		t.Fatalf("expected the second rating set to replace the first, got %d ratings", detail.Summary.RatingCount)
	}
	if detail.Summary.AverageRating == nil || *detail.Summary.AverageRating != 4.5 {
		t.Fatalf("expected average 4.5, got %v", detail.Summary.AverageRating)
	}
	if detail.Assignment.Status != "submitted" {
		t.Fatalf("expected submitted, got %s", detail.Assignment.Status)
	}
	if detail.Assignment.SubmittedAt == "" {
		t.Fatal("expected submitted_at stamped on submit")
	}
}

func TestFeedbackResponseUpsertAndCompletionRate(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	subject := createEmployee(t, app, token, "")
	p1 := createEmployee(t, app, token, "")
	p2 := createEmployee(t, app, token, "")
	p3 := createEmployee(t, app, token, "")

	deadline := time.Now().AddDate(0, 0, 14).Format("2006-01-02")
	code, env := doJSON(t, app, http.MethodPost, "/api/v1/feedback/requests", token, map[string]any{
		"employeeId": subject,
		"title":      "360 Feedback " + uuid.NewString()[:8],
		"deadline":   deadline,
		"providers": []map[string]string{
			{"providerId": p1, "relationship": "peer"},
			{"providerId": p2, "relationship": "peer"},
			{"providerId": p3, "relationship": "manager"},
		},
		"questions": []map[string]any{
			{"questionText": "What went well?", "questionType": "open_text", "required": true, "sortOrder": 1},
			{"questionText": "Rate collaboration", "questionType": "scale_5", "required": true, "sortOrder": 2},
		},
	})
	if code != http.StatusCreated {
		t.Fatalf("request create failed with status %d", code)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil || created.ID == "" {
		t.Fatalf("request create returned no id: %v", err)
	}
	requestID := created.ID

	submit := func(providerID string, comments string) {
		code, _ := doJSON(t, app, http.MethodPost, "/api/v1/feedback/requests/"+requestID+"/responses", token, map[string]any{
			"providerId": providerID,
			"answers":    map[string]string{"q1": "solid work"},
			"comments":   comments,
		})
		if code != http.StatusCreated {
			t.Fatalf("submit for %s failed with status %d", providerID, code)
		}
	}

	submit(p1, "first")
	submit(p2, "second")
	// Resubmission replaces the stored response instead of duplicating it.
	submit(p1, "first revised")

	code, env = doJSON(t, app, http.MethodGet, "/api/v1/feedback/requests/"+requestID, token, nil)
	if code != http.StatusOK {
		t.Fatalf("get request failed with status %d", code)
	}
	var detail struct {
		Request struct {
			TotalProviders     int      `json:"totalProviders"`
			CompletedProviders int      `json:"completedProviders"`
			CompletionRate     *float64 `json:"completionRate"`
		} `json:"request"`
		Providers []struct {
			ProviderID string `json:"providerId"`
			Status     string `json:"status"`
		} `json:"providers"`
	}
	if err := json.Unmarshal(env.Data, &detail); err != nil {
		t.Fatalf("decode request detail: %v", err)
	}
	if detail.Request.TotalProviders != 3 || detail.Request.CompletedProviders != 2 {
		t.Fatalf("expected 2/3 complete, got %d/%d", detail.Request.CompletedProviders, detail.Request.TotalProviders)
	}
	if detail.Request.CompletionRate == nil {
		t.Fatal("expected completion rate with providers present")
	}
	if diff := *detail.Request.CompletionRate - 2.0/3.0; diff > 0.0001 || diff < -0.0001 {
		t.Fatalf("expected completion rate 2/3, got %f", *detail.Request.CompletionRate)
	}
	for _, p := range detail.Providers {
		want := "completed"
		if p.ProviderID == p3 {
			want = "pending"
		}
		if p.Status != want {
			t.Fatalf("provider %s: expected %s, got %s", p.ProviderID, want, p.Status)
		}
	}

	code, env = doJSON(t, app, http.MethodGet, "/api/v1/feedback/requests/"+requestID+"/responses", token, nil)
	if code != http.StatusOK {
		t.Fatalf("list responses failed with status %d", code)
	}
	var responses []struct {
		ProviderID string `json:"providerId"`
		Comments   string `json:"comments"`
	}
	if err := json.Unmarshal(env.Data, &responses); err != nil {
		t.Fatalf("decode responses: %v", err)
	}
	if len(responses) != 2 {
		t.Fatalf("expected one response per provider, got %d", len(responses))
	}
	for _, resp := range responses {
		if resp.ProviderID == p1 && resp.Comments != "first revised" {
			t.Fatalf("expected resubmission to win, got %q", resp.Comments)
		}
	}
}

func TestMilestoneCompletionDatePersists(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	employee := createEmployee(t, app, token, "")
	supervisor := createEmployee(t, app, token, "")

	start := time.Now().Format("2006-01-02")
	end := time.Now().AddDate(0, 3, 0).Format("2006-01-02")
	code, env := doJSON(t, app, http.MethodPost, "/api/v1/pips", token, map[string]any{
		"employeeId":        employee,
		"supervisorId":      supervisor,
		"title":             "Improvement plan " + uuid.NewString()[:8],
		"severity":          "medium",
		"performanceIssues": "missed targets",
		"expectedOutcomes":  "back on track",
		"startDate":         start,
		"endDate":           end,
		"milestones": []map[string]any{
			{"title": "Weekly check-ins", "sortOrder": 1},
		},
	})
	if code != http.StatusCreated {
		t.Fatalf("pip create failed with status %d", code)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil || created.ID == "" {
		t.Fatalf("pip create returned no id: %v", err)
	}
	planID := created.ID

	milestoneID := func() string {
		code, env := doJSON(t, app, http.MethodGet, "/api/v1/pips/"+planID, token, nil)
		if code != http.StatusOK {
			t.Fatalf("get plan failed with status %d", code)
		}
		var detail struct {
			Milestones []struct {
				ID string `json:"id"`
			} `json:"milestones"`
		}
		if err := json.Unmarshal(env.Data, &detail); err != nil || len(detail.Milestones) == 0 {
			t.Fatalf("expected a milestone: %v", err)
		}
		return detail.Milestones[0].ID
	}()

	setStatus := func(status string) {
		code, _ := doJSON(t, app, http.MethodPatch, "/api/v1/pip-milestones/"+milestoneID, token, map[string]string{
			"status": status,
		})
		if code != http.StatusOK {
			t.Fatalf("milestone update to %s failed with status %d", status, code)
		}
	}

	completionDate := func() string {
		code, env := doJSON(t, app, http.MethodGet, "/api/v1/pips/"+planID, token, nil)
		if code != http.StatusOK {
			t.Fatalf("get plan failed with status %d", code)
		}
		var detail struct {
			Milestones []struct {
				Status         string  `json:"status"`
				CompletionDate *string `json:"completionDate"`
			} `json:"milestones"`
		}
		if err := json.Unmarshal(env.Data, &detail); err != nil {
			t.Fatalf("decode plan detail: %v", err)
		}
		if detail.Milestones[0].CompletionDate == nil {
			return ""
		}
		return *detail.Milestones[0].CompletionDate
	}

	setStatus("completed")
	completedAt := completionDate()
	if completedAt == "" {
		t.Fatal("expected completion date on transition to completed")
	}

	setStatus("in_progress")
	if got := completionDate(); got != completedAt {
		t.Fatalf("expected completion date preserved, got %q then %q", completedAt, got)
	}
}

func TestMilestoneUpdateScopedToTenant(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)
	ctx := context.Background()

	// A plan and milestone in a different tenant, reachable only by ID.
	var foreignTenant string
	if err := app.Pool.QueryRow(ctx,
		"INSERT INTO tenants (name) VALUES ($1) RETURNING id",
		"Foreign Tenant "+uuid.NewString()[:8]).Scan(&foreignTenant); err != nil {
		t.Fatalf("insert tenant: %v", err)
	}
	insertEmployee := func(first string) string {
		var id string
		if err := app.Pool.QueryRow(ctx, `
      INSERT INTO employees (tenant_id, first_name, last_name, email)
      VALUES ($1, $2, 'Foreign', $3) RETURNING id
    `, foreignTenant, first, uuid.NewString()+"@foreign.test").Scan(&id); err != nil {
			t.Fatalf("insert employee: %v", err)
		}
		return id
	}
	employee := insertEmployee("Subject")
	supervisor := insertEmployee("Supervisor")

	var planID string
	if err := app.Pool.QueryRow(ctx, `
    INSERT INTO pips (tenant_id, employee_id, supervisor_id, created_by, title, severity, start_date, end_date)
    VALUES ($1, $2, $3, gen_random_uuid(), 'Foreign plan', 'low', CURRENT_DATE, CURRENT_DATE + 90)
    RETURNING id
  `, foreignTenant, employee, supervisor).Scan(&planID); err != nil {
		t.Fatalf("insert plan: %v", err)
	}
	var milestoneID string
	if err := app.Pool.QueryRow(ctx,
		"INSERT INTO pip_milestones (pip_id, title) VALUES ($1, 'Check-in') RETURNING id",
		planID).Scan(&milestoneID); err != nil {
		t.Fatalf("insert milestone: %v", err)
	}

	code, env := doJSON(t, app, http.MethodPatch, "/api/v1/pip-milestones/"+milestoneID, token, map[string]string{
		"status": "completed",
	})
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 for another tenant's milestone, got %d", code)
	}
	if env.Error == nil || env.Error.Code != "not_found" {
		t.Fatalf("expected not_found error, got %+v", env.Error)
	}

	var status string
	if err := app.Pool.QueryRow(ctx,
		"SELECT status FROM pip_milestones WHERE id = $1", milestoneID).Scan(&status); err != nil {
		t.Fatalf("read milestone back: %v", err)
	}
	if status != "pending" {
		t.Fatalf("expected milestone untouched, got status %s", status)
	}
}

func TestFeedbackSubmitRejectsNonProvider(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	subject := createEmployee(t, app, token, "")
	invited := createEmployee(t, app, token, "")
	outsider := createEmployee(t, app, token, "")

	deadline := time.Now().AddDate(0, 0, 14).Format("2006-01-02")
	code, env := doJSON(t, app, http.MethodPost, "/api/v1/feedback/requests", token, map[string]any{
		"employeeId": subject,
		"title":      "360 Feedback " + uuid.NewString()[:8],
		"deadline":   deadline,
		"providers": []map[string]string{
			{"providerId": invited, "relationship": "peer"},
		},
		"questions": []map[string]any{
			{"questionText": "What went well?", "questionType": "open_text", "required": true, "sortOrder": 1},
		},
	})
	if code != http.StatusCreated {
		t.Fatalf("request create failed with status %d", code)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil || created.ID == "" {
		t.Fatalf("request create returned no id: %v", err)
	}
	requestID := created.ID

	// An employee outside the provider set must not get a response stored.
	code, env = doJSON(t, app, http.MethodPost, "/api/v1/feedback/requests/"+requestID+"/responses", token, map[string]any{
		"providerId": outsider,
		"answers":    map[string]string{"q1": "unsolicited"},
	})
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 for non-provider submit, got %d", code)
	}
	if env.Error == nil || env.Error.Code != "not_found" {
		t.Fatalf("expected not_found error, got %+v", env.Error)
	}

	// A request ID outside the tenant reads as not found too.
	code, _ = doJSON(t, app, http.MethodPost, "/api/v1/feedback/requests/"+uuid.NewString()+"/responses", token, map[string]any{
		"providerId": invited,
		"answers":    map[string]string{"q1": "lost"},
	})
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown request, got %d", code)
	}

	code, env = doJSON(t, app, http.MethodGet, "/api/v1/feedback/requests/"+requestID, token, nil)
	if code != http.StatusOK {
		t.Fatalf("get request failed with status %d", code)
	}
	var detail struct {
		Request struct {
			CompletedProviders int `json:"completedProviders"`
		} `json:"request"`
	}
	if err := json.Unmarshal(env.Data, &detail); err != nil {
		t.Fatalf("decode request detail: %v", err)
	}
	if detail.Request.CompletedProviders != 0 {
		t.Fatalf("expected no completed providers, got %d", detail.Request.CompletedProviders)
	}

	code, env = doJSON(t, app, http.MethodGet, "/api/v1/feedback/requests/"+requestID+"/responses", token, nil)
	if code != http.StatusOK {
		t.Fatalf("list responses failed with status %d", code)
	}
	var responses []json.RawMessage
	if err := json.Unmarshal(env.Data, &responses); err != nil {
		t.Fatalf("decode responses: %v", err)
	}
	if len(responses) != 0 {
		t.Fatalf("expected no stored responses, got %d", len(responses))
	}
}

func TestReviewSignOffRequiresReviewPermission(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)
	ctx := context.Background()

	reviewer := createEmployee(t, app, token, "")
	cycleID := createCycle(t, app, token)

	code, _ := doJSON(t, app, http.MethodPost, "/api/v1/performance/cycles/"+cycleID+"/assignments", token, map[string]any{
		"employeeIds": []string{reviewer},
	})
	if code != http.StatusOK {
		t.Fatalf("assign failed with status %d", code)
	}

	// Give the reviewer a login with the plain employee role.
	var tenantID string
	if err := app.Pool.QueryRow(ctx,
		"SELECT tenant_id FROM users WHERE email = 'admin@journey.test'").Scan(&tenantID); err != nil {
		t.Fatalf("resolve tenant: %v", err)
	}
	var roleID string
	if err := app.Pool.QueryRow(ctx,
		"SELECT id FROM roles WHERE tenant_id = $1 AND name = 'employee'", tenantID).Scan(&roleID); err != nil {
		t.Fatalf("resolve employee role: %v", err)
	}
	hash, err := auth.HashPassword("reviewer-password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	email := uuid.NewString() + "@journey.test"
	var userID string
	if err := app.Pool.QueryRow(ctx, `
    INSERT INTO users (tenant_id, role_id, email, password_hash)
    VALUES ($1, $2, $3, $4) RETURNING id
  `, tenantID, roleID, email, hash).Scan(&userID); err != nil {
		t.Fatalf("insert user: %v", err)
	}
	if _, err := app.Pool.Exec(ctx,
		"UPDATE employees SET user_id = $1 WHERE id = $2", userID, reviewer); err != nil {
		t.Fatalf("link user to employee: %v", err)
	}

	code, env := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": "reviewer-password",
	})
	if code != http.StatusOK {
		t.Fatalf("reviewer login failed with status %d", code)
	}
	var session struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &session); err != nil || session.Token == "" {
		t.Fatalf("reviewer login returned no token: %v", err)
	}
	reviewerToken := session.Token

	code, env = doJSON(t, app, http.MethodGet, "/api/v1/performance/reviews?cycleId="+cycleID, token, nil)
	if code != http.StatusOK {
		t.Fatalf("list assignments failed with status %d", code)
	}
	var assignments []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &assignments); err != nil || len(assignments) != 1 {
		t.Fatalf("expected one self review: %v", err)
	}
	reviewID := assignments[0].ID

	// The reviewer works and submits their own review.
	code, _ = doJSON(t, app, http.MethodPatch, "/api/v1/performance/reviews/"+reviewID+"/status", reviewerToken, map[string]string{
		"status": "submitted",
	})
	if code != http.StatusOK {
		t.Fatalf("reviewer submit failed with status %d", code)
	}

	// Sign-off is reserved for roles holding the review permission.
	code, env = doJSON(t, app, http.MethodPatch, "/api/v1/performance/reviews/"+reviewID+"/status", reviewerToken, map[string]string{
		"status": "reviewed",
	})
	if code != http.StatusForbidden {
		t.Fatalf("expected 403 for sign-off without review permission, got %d", code)
	}
	if env.Error == nil || env.Error.Code != "forbidden" {
		t.Fatalf("expected forbidden error, got %+v", env.Error)
	}

	code, _ = doJSON(t, app, http.MethodPatch, "/api/v1/performance/reviews/"+reviewID+"/status", token, map[string]string{
		"status": "reviewed",
	})
	if code != http.StatusOK {
		t.Fatalf("hr sign-off failed with status %d", code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestPermissionDeniedWithoutToken(t *testing.T) {
	app := newTestApp(t)

	code, env := doJSON(t, app, http.MethodGet, "/api/v1/performance/cycles", "", nil)
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if env.Error == nil || env.Error.Code != "unauthorized" {
		t.Fatalf("expected unauthorized error, got %+v", env.Error)
	}
}
