package domain

import (
	"errors"
	"time"
)

// Metric is a timestamped performance snapshot for a campaign. Many snapshots
// may share a recorded_at; the series is ordered, not keyed, by time.
// Monetary and rate fields are decimal strings as stored.
type Metric struct {
	ID             string    `json:"id"`
	CampaignID     string    `json:"campaignId"`
	Impressions    int       `json:"impressions"`
	Clicks         int       `json:"clicks"`
	Conversions    int       `json:"conversions"`
	Spend          string    `json:"spend"`
	Revenue        string    `json:"revenue"`
	CTR            string    `json:"ctr"`
	CPC            string    `json:"cpc"`
	ROAS           string    `json:"roas"`
	EngagementRate string    `json:"engagementRate"`
	RecordedAt     time.Time `json:"recordedAt"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Validate validates the metric for persistence.
func (m *Metric) Validate() error {
	if m.ID == "" {
		return errors.New("id is required")
	}
	if m.CampaignID == "" {
		return errors.New("campaign id is required")
	}
	if m.Impressions < 0 || m.Clicks < 0 || m.Conversions < 0 {
		return errors.New("counts must not be negative")
	}
	return nil
}
