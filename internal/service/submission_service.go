package service

import (
	"context"

	"github.com/portfolio/backend/internal/model"
)

// SubmissionService defines the business logic for contact form submissions.
type SubmissionService interface {
	// Submit persists the submission to the durable store and forwards it to
	// the spreadsheet webhook. The store is the source of truth: its failure
	// fails the call. The webhook is advisory: its failure is absorbed and
	// reported only through the returned forwarded flag.
	// sub.Source, sub.ID and sub.CreatedAt are populated by the implementation.
	Submit(ctx context.Context, sub *model.ContactSubmission) (forwarded bool, err error)

	// List returns stored submissions according to the given options.
	List(ctx context.Context, opts model.SubmissionListOptions) ([]*model.ContactSubmission, error)
}
