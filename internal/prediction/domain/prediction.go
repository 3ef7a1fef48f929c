package domain

import (
	"errors"
	"fmt"
	"time"
)

// Prediction is a forward-looking estimate for a campaign. PredictedValue,
// Confidence, and Accuracy are decimal strings as stored; Confidence and
// Accuracy are 0-100 percentages by convention.
type Prediction struct {
	ID             string    `json:"id"`
	CampaignID     string    `json:"campaignId"`
	PredictionType Type      `json:"predictionType"`
	PredictedValue *string   `json:"predictedValue"`
	Confidence     *string   `json:"confidence"`
	Insights       *string   `json:"insights"`
	Recommendation *string   `json:"recommendation"`
	ActualValue    *string   `json:"actualValue"`
	Accuracy       *string   `json:"accuracy"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type Type string

const (
	TypePerformance        Type = "performance"
	TypeConversionRate     Type = "conversion_rate"
	TypeOptimalTiming      Type = "optimal_timing"
	TypeAudienceSegment    Type = "audience_segment"
	TypeContentPerformance Type = "content_performance"
)

// ParseType validates a prediction type string at the boundary.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypePerformance, TypeConversionRate, TypeOptimalTiming, TypeAudienceSegment, TypeContentPerformance:
		return Type(s), nil
	}
	return "", fmt.Errorf("invalid prediction type %q", s)
}

// Validate validates the prediction for persistence.
func (p *Prediction) Validate() error {
	if p.ID == "" {
		return errors.New("id is required")
	}
	if p.CampaignID == "" {
		return errors.New("campaign id is required")
	}
	if _, err := ParseType(string(p.PredictionType)); err != nil {
		return err
	}
	return nil
}
