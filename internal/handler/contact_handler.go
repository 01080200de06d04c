package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/portfolio/backend/internal/logging"
	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/service"
)

const (
	maxNameLength    = 100
	maxEmailLength   = 255
	maxMessageLength = 5000
)

// emailPattern is a shape check (local@domain.tld), not full RFC 5322
// validation: the client mirrors the same pattern.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactHandler handles contact form submission and admin listing.
type ContactHandler struct {
	submissionService service.SubmissionService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(submissionService service.SubmissionService) *ContactHandler {
	return &ContactHandler{submissionService: submissionService}
}

// submitRequest is the expected JSON body for POST /api/contact.
type submitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// submitResponse is the JSON body for a successful submission.
type submitResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	GoogleSheets bool   `json:"googleSheets"`
}

// validate trims the request fields and checks them in a fixed order,
// returning the first failure message, or "" when the request is valid.
// Checks run on the trimmed values; the trimmed values are what gets
// persisted.
func (req *submitRequest) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)

	switch {
	case req.Name == "":
		return "Name is required"
	case len([]rune(req.Name)) > maxNameLength:
		return "Name must be less than 100 characters"
	case req.Email == "":
		return "Email is required"
	case len([]rune(req.Email)) > maxEmailLength:
		return "Email must be less than 255 characters"
	case !emailPattern.MatchString(req.Email):
		return "Invalid email format"
	case req.Message == "":
		return "Message is required"
	case len([]rune(req.Message)) > maxMessageLength:
		return "Message must be less than 5000 characters"
	}
	return ""
}

// Submit handles POST /api/contact.
// Validation failures short-circuit with 400 before any sink is touched.
// A durable-store failure is 500; a spreadsheet-forwarding failure only
// clears the googleSheets flag in the success response.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid request body"})
		return
	}

	if msg := req.validate(); msg != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
		return
	}

	// Never log the message body or the raw email.
	slog.Info("submitting contact form",
		"name", req.Name,
		"email", logging.MaskEmail(req.Email),
	)

	sub := &model.ContactSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}
	forwarded, err := h.submissionService.Submit(r.Context(), sub)
	if err != nil {
		slog.Error("contact submission store write failed", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Failed to save form submission"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(submitResponse{
		Success:      true,
		Message:      "Form submitted successfully",
		GoogleSheets: forwarded,
	})
}

// adminListResponse is the JSON response for GET /api/admin/submissions.
type adminListResponse struct {
	Submissions []*model.ContactSubmission `json:"submissions"`
}

// AdminList handles GET /api/admin/submissions (token-protected).
// Supports query params: limit (1-100, default 20) and offset.
// Listing is read-only; submissions stay append-only.
func (h *ContactHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	opts := model.SubmissionListOptions{
		Limit:  20,
		Offset: 0,
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 100 {
			opts.Limit = n
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			opts.Offset = n
		}
	}

	submissions, err := h.submissionService.List(r.Context(), opts)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "list_failed"})
		return
	}

	// Return [] not null for empty lists
	if submissions == nil {
		submissions = []*model.ContactSubmission{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(adminListResponse{Submissions: submissions})
}
