package models

import (
	"fmt"
	"time"
)

// RequestStatus is the status of a single generation attempt
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusStarted   RequestStatus = "started"
	RequestStatusCompleted RequestStatus = "completed"
	RequestStatusFailed    RequestStatus = "failed"
)

// GenerationRequest is the audit record of one attempt against a ManualTitle.
// Once completed or failed only the audit fields (UpdatedAt) may change.
type GenerationRequest struct {
	ID              string        `json:"id" badgerhold:"key"`
	ManualTitleID   string        `json:"manual_title_id" badgerhold:"index"`
	Status          RequestStatus `json:"status" badgerhold:"index"`
	TemplateCode    string        `json:"template_code,omitempty"`
	GeneratorFamily string        `json:"generator_family,omitempty"`
	ErrorMessage    string        `json:"error_message,omitempty"`
	ArticleID       string        `json:"article_id,omitempty"`
	Cost            float64       `json:"cost"`
	Provider        string        `json:"provider,omitempty"`
	Model           string        `json:"model,omitempty"`
	StartedAt       *time.Time    `json:"started_at,omitempty"`
	CompletedAt     *time.Time    `json:"completed_at,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// NewGenerationRequest creates a pending request for the given title
func NewGenerationRequest(id, titleID string, now time.Time) *GenerationRequest {
	return &GenerationRequest{
		ID:            id,
		ManualTitleID: titleID,
		Status:        RequestStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsFinal reports whether the request reached completed or failed
func (r *GenerationRequest) IsFinal() bool {
	return r.Status == RequestStatusCompleted || r.Status == RequestStatusFailed
}

// Start moves a pending request to started and records the start time
func (r *GenerationRequest) Start(now time.Time) error {
	if r.Status != RequestStatusPending {
		return fmt.Errorf("request %s cannot start from status %s", r.ID, r.Status)
	}
	r.Status = RequestStatusStarted
	r.StartedAt = &now
	r.UpdatedAt = now
	return nil
}

// Complete marks a started request completed with its article reference and cost
func (r *GenerationRequest) Complete(articleID string, cost float64, now time.Time) error {
	if r.Status != RequestStatusStarted {
		return fmt.Errorf("request %s cannot complete from status %s", r.ID, r.Status)
	}
	r.Status = RequestStatusCompleted
	r.ArticleID = articleID
	r.Cost = cost
	r.CompletedAt = &now
	r.UpdatedAt = now
	return nil
}

// Fail marks a non-final request failed with the error message verbatim
func (r *GenerationRequest) Fail(message string, now time.Time) error {
	if r.IsFinal() {
		return fmt.Errorf("request %s already %s", r.ID, r.Status)
	}
	r.Status = RequestStatusFailed
	r.ErrorMessage = message
	r.CompletedAt = &now
	r.UpdatedAt = now
	return nil
}
