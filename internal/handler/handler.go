package handler

import (
	"github.com/portfolio/backend/internal/repository"
)

// Handler carries shared dependencies for endpoints that are not tied to a
// specific service (health checks).
type Handler struct {
	db repository.DB
}

func New(db repository.DB) *Handler {
	return &Handler{db: db}
}
