package model

import "time"

// SubmissionSource tags every submission with the form it came from.
const SubmissionSource = "Portfolio Contact Form"

// ContactSubmission represents one contact form submission.
// All user-supplied fields are stored trimmed; CreatedAt is always
// server-assigned, never taken from the request.
type ContactSubmission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmissionListOptions carries pagination parameters for the admin listing.
type SubmissionListOptions struct {
	Limit  int
	Offset int
}
