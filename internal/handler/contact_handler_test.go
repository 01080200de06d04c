package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/portfolio/backend/internal/model"
)

// ---------------------------------------------------------------------------
// Mock SubmissionService
// ---------------------------------------------------------------------------

type mockSubmissionService struct {
	submitFunc func(ctx context.Context, sub *model.ContactSubmission) (bool, error)
	listFunc   func(ctx context.Context, opts model.SubmissionListOptions) ([]*model.ContactSubmission, error)

	submitCalls int
}

func (m *mockSubmissionService) Submit(ctx context.Context, sub *model.ContactSubmission) (bool, error) {
	m.submitCalls++
	if m.submitFunc != nil {
		return m.submitFunc(ctx, sub)
	}
	return true, nil
}

func (m *mockSubmissionService) List(ctx context.Context, opts model.SubmissionListOptions) ([]*model.ContactSubmission, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func postContact(t *testing.T, h *ContactHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	return resp["error"]
}

// ---------------------------------------------------------------------------
// POST /api/contact — success paths
// ---------------------------------------------------------------------------

func TestContactHandler_Submit_Success(t *testing.T) {
	var captured *model.ContactSubmission
	mock := &mockSubmissionService{
		submitFunc: func(ctx context.Context, sub *model.ContactSubmission) (bool, error) {
			captured = sub
			return true, nil
		},
	}
	h := NewContactHandler(mock)

	rec := postContact(t, h, `{"name":"Alice","email":"alice@example.com","message":"Hello!"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d — body: %s", rec.Code, rec.Body.String())
	}
	var resp submitResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success {
		t.Error("expected success=true")
	}
	if resp.Message != "Form submitted successfully" {
		t.Errorf("message = %q", resp.Message)
	}
	if !resp.GoogleSheets {
		t.Error("expected googleSheets=true when forwarding succeeded")
	}
	if captured == nil {
		t.Fatal("expected Submit to be called")
	}
	if captured.Name != "Alice" || captured.Email != "alice@example.com" || captured.Message != "Hello!" {
		t.Errorf("unexpected captured submission: %+v", captured)
	}
}

// TestContactHandler_Submit_TrimsFields verifies that the trimmed values,
// not the raw ones, reach the service.
func TestContactHandler_Submit_TrimsFields(t *testing.T) {
	var captured *model.ContactSubmission
	mock := &mockSubmissionService{
		submitFunc: func(ctx context.Context, sub *model.ContactSubmission) (bool, error) {
			captured = sub
			return true, nil
		},
	}
	h := NewContactHandler(mock)

	rec := postContact(t, h, `{"name":"  Alice  ","email":"  alice@example.com ","message":"\tHello!\n"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d — body: %s", rec.Code, rec.Body.String())
	}
	if captured.Name != "Alice" {
		t.Errorf("name not trimmed: %q", captured.Name)
	}
	if captured.Email != "alice@example.com" {
		t.Errorf("email not trimmed: %q", captured.Email)
	}
	if captured.Message != "Hello!" {
		t.Errorf("message not trimmed: %q", captured.Message)
	}
}

func TestContactHandler_Submit_SheetsFailureStillSucceeds(t *testing.T) {
	mock := &mockSubmissionService{
		submitFunc: func(ctx context.Context, sub *model.ContactSubmission) (bool, error) {
			return false, nil // store ok, forwarding failed
		},
	}
	h := NewContactHandler(mock)

	rec := postContact(t, h, `{"name":"Bob","email":"bob@example.com","message":"Hi"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 when only forwarding failed, got %d", rec.Code)
	}
	var resp submitResponse
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if resp.GoogleSheets {
		t.Error("expected googleSheets=false when forwarding failed")
	}
}

// ---------------------------------------------------------------------------
// POST /api/contact — validation
// ---------------------------------------------------------------------------

func TestContactHandler_Submit_Validation(t *testing.T) {
	longName := strings.Repeat("n", 101)
	maxName := strings.Repeat("n", 100)
	longEmail := strings.Repeat("e", 250) + "@example.com" // 262 chars
	longMessage := strings.Repeat("m", 5001)
	maxMessage := strings.Repeat("m", 5000)

	cases := []struct {
		name       string
		body       map[string]string
		wantStatus int
		wantError  string
	}{
		{
			name:       "missing name",
			body:       map[string]string{"email": "a@b.co", "message": "hi"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Name is required",
		},
		{
			name:       "whitespace-only name",
			body:       map[string]string{"name": "   \t", "email": "a@b.co", "message": "hi"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Name is required",
		},
		{
			name:       "name too long",
			body:       map[string]string{"name": longName, "email": "a@b.co", "message": "hi"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Name must be less than 100 characters",
		},
		{
			name:       "name at limit accepted",
			body:       map[string]string{"name": maxName, "email": "a@b.co", "message": "hi"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing email",
			body:       map[string]string{"name": "Alice", "message": "hi"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Email is required",
		},
		{
			name:       "email too long",
			body:       map[string]string{"name": "Alice", "email": longEmail, "message": "hi"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Email must be less than 255 characters",
		},
		{
			name:       "invalid email format",
			body:       map[string]string{"name": "Alice", "email": "not-an-email", "message": "hi"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid email format",
		},
		{
			name:       "email with spaces rejected",
			body:       map[string]string{"name": "Alice", "email": "a b@example.com", "message": "hi"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid email format",
		},
		{
			name:       "minimal valid email accepted",
			body:       map[string]string{"name": "Alice", "email": "a@b.co", "message": "hi"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing message",
			body:       map[string]string{"name": "Alice", "email": "a@b.co"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Message is required",
		},
		{
			name:       "whitespace-only message",
			body:       map[string]string{"name": "Alice", "email": "a@b.co", "message": " \n "},
			wantStatus: http.StatusBadRequest,
			wantError:  "Message is required",
		},
		{
			name:       "message too long",
			body:       map[string]string{"name": "Alice", "email": "a@b.co", "message": longMessage},
			wantStatus: http.StatusBadRequest,
			wantError:  "Message must be less than 5000 characters",
		},
		{
			name:       "message at limit accepted",
			body:       map[string]string{"name": "Alice", "email": "a@b.co", "message": maxMessage},
			wantStatus: http.StatusOK,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := &mockSubmissionService{}
			h := NewContactHandler(mock)

			body, _ := json.Marshal(tc.body)
			req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			h.Submit(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d — body: %s", rec.Code, tc.wantStatus, rec.Body.String())
			}
			if tc.wantError != "" {
				if got := errorMessage(t, rec); got != tc.wantError {
					t.Errorf("error = %q, want %q", got, tc.wantError)
				}
				if mock.submitCalls != 0 {
					t.Error("no sink must be written for an invalid request")
				}
			}
		})
	}
}

// validate runs checks in a fixed order; a request failing several checks
// reports the first one.
func TestContactHandler_Submit_ValidationOrder(t *testing.T) {
	mock := &mockSubmissionService{}
	h := NewContactHandler(mock)

	// Both name and email are missing; name is checked first.
	rec := postContact(t, h, `{"message":"hi"}`)
	if got := errorMessage(t, rec); got != "Name is required" {
		t.Errorf("error = %q, want the name check to fire first", got)
	}
}

func TestContactHandler_Submit_InvalidJSON(t *testing.T) {
	mock := &mockSubmissionService{}
	h := NewContactHandler(mock)

	rec := postContact(t, h, "{bad json")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid JSON, got %d", rec.Code)
	}
	if mock.submitCalls != 0 {
		t.Error("no sink must be written for malformed JSON")
	}
}

func TestContactHandler_Submit_StoreError(t *testing.T) {
	mock := &mockSubmissionService{
		submitFunc: func(ctx context.Context, sub *model.ContactSubmission) (bool, error) {
			return false, errors.New("db connection lost")
		},
	}
	h := NewContactHandler(mock)

	rec := postContact(t, h, `{"name":"Alice","email":"alice@example.com","message":"Hi"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on store error, got %d", rec.Code)
	}
	if got := errorMessage(t, rec); got != "Failed to save form submission" {
		t.Errorf("error = %q", got)
	}
}

// ---------------------------------------------------------------------------
// GET /api/admin/submissions
// ---------------------------------------------------------------------------

func TestContactHandler_AdminList_Defaults(t *testing.T) {
	var gotOpts model.SubmissionListOptions
	mock := &mockSubmissionService{
		listFunc: func(ctx context.Context, opts model.SubmissionListOptions) ([]*model.ContactSubmission, error) {
			gotOpts = opts
			return nil, nil
		},
	}
	h := NewContactHandler(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/submissions", nil)
	rec := httptest.NewRecorder()
	h.AdminList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotOpts.Limit != 20 || gotOpts.Offset != 0 {
		t.Errorf("default opts = %+v, want limit 20 offset 0", gotOpts)
	}

	// Empty listings serialize as [] rather than null.
	if !strings.Contains(rec.Body.String(), `"submissions":[]`) {
		t.Errorf("expected empty array, got: %s", rec.Body.String())
	}
}

func TestContactHandler_AdminList_Pagination(t *testing.T) {
	var gotOpts model.SubmissionListOptions
	mock := &mockSubmissionService{
		listFunc: func(ctx context.Context, opts model.SubmissionListOptions) ([]*model.ContactSubmission, error) {
			gotOpts = opts
			return nil, nil
		},
	}
	h := NewContactHandler(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/submissions?limit=50&offset=100", nil)
	rec := httptest.NewRecorder()
	h.AdminList(rec, req)

	if gotOpts.Limit != 50 || gotOpts.Offset != 100 {
		t.Errorf("opts = %+v, want limit 50 offset 100", gotOpts)
	}
}

func TestContactHandler_AdminList_LimitCapIgnoresExcess(t *testing.T) {
	var gotOpts model.SubmissionListOptions
	mock := &mockSubmissionService{
		listFunc: func(ctx context.Context, opts model.SubmissionListOptions) ([]*model.ContactSubmission, error) {
			gotOpts = opts
			return nil, nil
		},
	}
	h := NewContactHandler(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/submissions?limit=5000", nil)
	rec := httptest.NewRecorder()
	h.AdminList(rec, req)

	if gotOpts.Limit != 20 {
		t.Errorf("limit = %d, want the default 20 when out of range", gotOpts.Limit)
	}
}

func TestContactHandler_AdminList_Error(t *testing.T) {
	mock := &mockSubmissionService{
		listFunc: func(ctx context.Context, opts model.SubmissionListOptions) ([]*model.ContactSubmission, error) {
			return nil, errors.New("query failed")
		},
	}
	h := NewContactHandler(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/submissions", nil)
	rec := httptest.NewRecorder()
	h.AdminList(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}
