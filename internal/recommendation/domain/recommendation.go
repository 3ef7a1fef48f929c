package domain

import (
	"errors"
	"fmt"
	"time"
)

// Recommendation is a suggested change to a campaign with an accept/dismiss
// lifecycle. ExpectedImpact is a percentage as a decimal string.
type Recommendation struct {
	ID                 string     `json:"id"`
	CampaignID         string     `json:"campaignId"`
	RecommendationType Type       `json:"recommendationType"`
	CurrentValue       *string    `json:"currentValue"`
	SuggestedValue     *string    `json:"suggestedValue"`
	ExpectedImpact     *string    `json:"expectedImpact"`
	Priority           Priority   `json:"priority"`
	Status             Status     `json:"status"`
	AppliedAt          *time.Time `json:"appliedAt"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

type Type string

const (
	TypeHeadlineOptimization Type = "headline_optimization"
	TypeAudienceSegmentation Type = "audience_segmentation"
	TypeSendTimeOptimization Type = "send_time_optimization"
	TypeBudgetAllocation     Type = "budget_allocation"
	TypeContentSuggestion    Type = "content_suggestion"
)

// ParseType validates a recommendation type string at the boundary.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeHeadlineOptimization, TypeAudienceSegmentation, TypeSendTimeOptimization, TypeBudgetAllocation, TypeContentSuggestion:
		return Type(s), nil
	}
	return "", fmt.Errorf("invalid recommendation type %q", s)
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority validates a priority string at the boundary.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), nil
	}
	return "", fmt.Errorf("invalid priority %q", s)
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusApplied   Status = "applied"
	StatusDismissed Status = "dismissed"
)

// ParseStatus validates a status string at the boundary.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApplied, StatusDismissed:
		return Status(s), nil
	}
	return "", fmt.Errorf("invalid recommendation status %q", s)
}

// Validate validates the recommendation for persistence.
func (r *Recommendation) Validate() error {
	if r.ID == "" {
		return errors.New("id is required")
	}
	if r.CampaignID == "" {
		return errors.New("campaign id is required")
	}
	if _, err := ParseType(string(r.RecommendationType)); err != nil {
		return err
	}
	if _, err := ParsePriority(string(r.Priority)); err != nil {
		return err
	}
	if _, err := ParseStatus(string(r.Status)); err != nil {
		return err
	}
	return nil
}
