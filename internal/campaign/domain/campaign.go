package domain

import (
	"errors"
	"fmt"
	"time"
)

// Campaign is a user-defined marketing effort tied to one integration,
// progressing through a status lifecycle. Budget is a decimal string
// (e.g. "1500.00") to avoid float drift on money.
type Campaign struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	IntegrationID  string     `json:"integrationId"`
	Name           string     `json:"name"`
	Description    *string    `json:"description"`
	CampaignType   Type       `json:"campaignType"`
	Status         Status     `json:"status"`
	Budget         *string    `json:"budget"`
	StartDate      *time.Time `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	TargetAudience *string    `json:"targetAudience"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type Type string

const (
	TypeEmail       Type = "email"
	TypeSocialMedia Type = "social_media"
	TypePaidAds     Type = "paid_ads"
	TypeContent     Type = "content"
)

// ParseType validates a campaign type string at the boundary.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeEmail, TypeSocialMedia, TypePaidAds, TypeContent:
		return Type(s), nil
	}
	return "", fmt.Errorf("invalid campaign type %q", s)
}

type Status string

const (
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusPaused    Status = "paused"
)

// ParseStatus validates a campaign status string at the boundary.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusScheduled, StatusRunning, StatusCompleted, StatusPaused:
		return Status(s), nil
	}
	return "", fmt.Errorf("invalid campaign status %q", s)
}

// Validate validates the campaign for persistence.
func (c *Campaign) Validate() error {
	if c.ID == "" {
		return errors.New("id is required")
	}
	if c.UserID == "" {
		return errors.New("user id is required")
	}
	if c.IntegrationID == "" {
		return errors.New("integration id is required")
	}
	if c.Name == "" {
		return errors.New("name is required")
	}
	if _, err := ParseType(string(c.CampaignType)); err != nil {
		return err
	}
	if _, err := ParseStatus(string(c.Status)); err != nil {
		return err
	}
	return nil
}
