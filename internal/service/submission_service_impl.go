package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/pkg/sheets"
)

// submissionServiceImpl is the production implementation of SubmissionService.
type submissionServiceImpl struct {
	repo   repository.SubmissionRepository
	sheets sheets.Client
}

// NewSubmissionService creates a SubmissionService backed by the given
// repository and spreadsheet client.
func NewSubmissionService(repo repository.SubmissionRepository, sheetsClient sheets.Client) SubmissionService {
	return &submissionServiceImpl{repo: repo, sheets: sheetsClient}
}

// Submit stores the submission, then forwards it to the spreadsheet webhook.
// Store and webhook run sequentially: a failed store write returns before
// the webhook is attempted, so no row is forwarded that was never recorded.
func (s *submissionServiceImpl) Submit(ctx context.Context, sub *model.ContactSubmission) (bool, error) {
	sub.Source = model.SubmissionSource
	sub.CreatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, sub); err != nil {
		return false, err
	}

	row := sheets.Row{
		Timestamp: sub.CreatedAt.Format(time.RFC3339),
		Name:      sub.Name,
		Email:     sub.Email,
		Message:   sub.Message,
		Source:    sub.Source,
	}
	if err := s.sheets.Append(ctx, row); err != nil {
		if errors.Is(err, sheets.ErrNotConfigured) {
			slog.Warn("sheets forwarding skipped, webhook URL not configured")
		} else {
			slog.Error("sheets forwarding failed", "error", err)
		}
		return false, nil
	}
	return true, nil
}

// List returns stored submissions according to the given pagination options.
func (s *submissionServiceImpl) List(ctx context.Context, opts model.SubmissionListOptions) ([]*model.ContactSubmission, error) {
	return s.repo.List(ctx, opts)
}
