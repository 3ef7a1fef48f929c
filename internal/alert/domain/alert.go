package domain

import (
	"errors"
	"fmt"
	"time"
)

// Alert is a notification of a noteworthy event, scoped to a user and
// optionally a campaign. IsRead flips exactly once; ReadAt records when.
type Alert struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	CampaignID *string    `json:"campaignId"`
	AlertType  Type       `json:"alertType"`
	Title      string     `json:"title"`
	Message    *string    `json:"message"`
	Severity   Severity   `json:"severity"`
	IsRead     bool       `json:"isRead"`
	ActionURL  *string    `json:"actionUrl"`
	CreatedAt  time.Time  `json:"createdAt"`
	ReadAt     *time.Time `json:"readAt"`
}

type Type string

const (
	TypePerformanceDrop         Type = "performance_drop"
	TypeBudgetThreshold         Type = "budget_threshold"
	TypeAnomalyDetected         Type = "anomaly_detected"
	TypeRecommendationAvailable Type = "recommendation_available"
	TypeIntegrationError        Type = "integration_error"
)

// ParseType validates an alert type string at the boundary.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypePerformanceDrop, TypeBudgetThreshold, TypeAnomalyDetected, TypeRecommendationAvailable, TypeIntegrationError:
		return Type(s), nil
	}
	return "", fmt.Errorf("invalid alert type %q", s)
}

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// ParseSeverity validates a severity string at the boundary.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(s) {
	case SeverityInfo, SeverityWarning, SeverityCritical:
		return Severity(s), nil
	}
	return "", fmt.Errorf("invalid severity %q", s)
}

// Validate validates the alert for persistence.
func (a *Alert) Validate() error {
	if a.ID == "" {
		return errors.New("id is required")
	}
	if a.UserID == "" {
		return errors.New("user id is required")
	}
	if a.Title == "" {
		return errors.New("title is required")
	}
	if _, err := ParseType(string(a.AlertType)); err != nil {
		return err
	}
	if _, err := ParseSeverity(string(a.Severity)); err != nil {
		return err
	}
	return nil
}
