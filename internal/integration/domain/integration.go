package domain

import (
	"errors"
	"fmt"
	"time"
)

// Integration is a connected external marketing platform account.
type Integration struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	Platform     Platform   `json:"platform"`
	Name         string     `json:"name"`
	AccessToken  *string    `json:"accessToken"`
	RefreshToken *string    `json:"refreshToken"`
	AccountID    *string    `json:"accountId"`
	IsActive     bool       `json:"isActive"`
	LastSyncedAt *time.Time `json:"lastSyncedAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type Platform string

const (
	PlatformGoogleAnalytics Platform = "google_analytics"
	PlatformFacebookAds     Platform = "facebook_ads"
	PlatformMailchimp       Platform = "mailchimp"
	PlatformHubspot         Platform = "hubspot"
	PlatformManualUpload    Platform = "manual_upload"
)

// ParsePlatform validates a platform string at the boundary.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(s) {
	case PlatformGoogleAnalytics, PlatformFacebookAds, PlatformMailchimp, PlatformHubspot, PlatformManualUpload:
		return Platform(s), nil
	}
	return "", fmt.Errorf("invalid platform %q", s)
}

// Validate validates the integration for persistence. Returns an error describing the first validation failure.
func (i *Integration) Validate() error {
	if i.ID == "" {
		return errors.New("id is required")
	}
	if i.UserID == "" {
		return errors.New("user id is required")
	}
	if i.Name == "" {
		return errors.New("name is required")
	}
	if _, err := ParsePlatform(string(i.Platform)); err != nil {
		return err
	}
	return nil
}
