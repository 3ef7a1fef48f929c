// seed inserts development sample data for local testing.
// Idempotent: skips inserts if the dev user already owns a campaign.
package main

import (
	"context"
	"log"
	"time"

	alertdomain "marketing-dashboard/backend/internal/alert/domain"
	alertrepo "marketing-dashboard/backend/internal/alert/repository"
	campaigndomain "marketing-dashboard/backend/internal/campaign/domain"
	campaignrepo "marketing-dashboard/backend/internal/campaign/repository"
	"marketing-dashboard/backend/internal/config"
	"marketing-dashboard/backend/internal/db"
	integrationdomain "marketing-dashboard/backend/internal/integration/domain"
	integrationrepo "marketing-dashboard/backend/internal/integration/repository"
	metricdomain "marketing-dashboard/backend/internal/metric/domain"
	metricrepo "marketing-dashboard/backend/internal/metric/repository"
	recdomain "marketing-dashboard/backend/internal/recommendation/domain"
	recrepo "marketing-dashboard/backend/internal/recommendation/repository"
	userrepo "marketing-dashboard/backend/internal/user/repository"
)

const (
	devUserID        = "dev-user-001"
	devUserEmail     = "dev@example.com"
	devIntegrationID = "dev-integration-001"
	devCampaignID    = "dev-campaign-001"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	store := db.NewHandle(cfg.DatabaseURL)
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := store.Get(ctx); err != nil {
		log.Fatalf("seed: store unavailable: %v", err)
	}

	users := userrepo.NewPostgresRepository(store, cfg.OwnerUserID)
	integrations := integrationrepo.NewPostgresRepository(store)
	campaigns := campaignrepo.NewPostgresRepository(store)
	metrics := metricrepo.NewPostgresRepository(store)
	recommendations := recrepo.NewPostgresRepository(store)
	alerts := alertrepo.NewPostgresRepository(store)

	existing, err := campaigns.ListByUser(ctx, devUserID)
	if err != nil {
		log.Fatalf("seed: list campaigns: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("seed: dev user %s already has %d campaign(s); nothing to do", devUserID, len(existing))
		return
	}

	name := "Dev User"
	method := "seed"
	if err := users.Upsert(ctx, userrepo.UpsertParams{
		ID:          devUserID,
		Name:        &name,
		Email:       strptr(devUserEmail),
		LoginMethod: &method,
	}); err != nil {
		log.Fatalf("seed: upsert user: %v", err)
	}

	now := time.Now().UTC()
	if err := integrations.Create(ctx, &integrationdomain.Integration{
		ID:        devIntegrationID,
		UserID:    devUserID,
		Platform:  integrationdomain.PlatformMailchimp,
		Name:      "Dev Newsletter Account",
		AccountID: strptr("mc-dev-001"),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		log.Fatalf("seed: create integration: %v", err)
	}

	if err := campaigns.Create(ctx, &campaigndomain.Campaign{
		ID:             devCampaignID,
		UserID:         devUserID,
		IntegrationID:  devIntegrationID,
		Name:           "Spring Newsletter",
		Description:    strptr("Seasonal promotion for the spring collection."),
		CampaignType:   campaigndomain.TypeEmail,
		Status:         campaigndomain.StatusRunning,
		Budget:         strptr("1500.00"),
		TargetAudience: strptr("Newsletter subscribers"),
		CreatedAt:      now,
		UpdatedAt:      now,
	}); err != nil {
		log.Fatalf("seed: create campaign: %v", err)
	}

	snapshots := []*metricdomain.Metric{
		{ID: "dev-metric-001", Impressions: 1000, Clicks: 50, Conversions: 5,
			Spend: "100.00", Revenue: "350.00", CTR: "5.00", CPC: "2.00", ROAS: "3.50",
			EngagementRate: "3.10", RecordedAt: now.Add(-48 * time.Hour)},
		{ID: "dev-metric-002", Impressions: 2000, Clicks: 100, Conversions: 10,
			Spend: "200.00", Revenue: "720.00", CTR: "5.00", CPC: "2.00", ROAS: "3.60",
			EngagementRate: "4.20", RecordedAt: now.Add(-24 * time.Hour)},
	}
	for _, m := range snapshots {
		m.CampaignID = devCampaignID
		m.CreatedAt = now
		if err := metrics.Create(ctx, m); err != nil {
			log.Fatalf("seed: create metric %s: %v", m.ID, err)
		}
	}

	if err := recommendations.Create(ctx, &recdomain.Recommendation{
		ID:                 "dev-recommendation-001",
		CampaignID:         devCampaignID,
		RecommendationType: recdomain.TypeSendTimeOptimization,
		CurrentValue:       strptr("Monday 09:00"),
		SuggestedValue:     strptr("Wednesday 18:00"),
		ExpectedImpact:     strptr("12"),
		Priority:           recdomain.PriorityMedium,
		Status:             recdomain.StatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}); err != nil {
		log.Fatalf("seed: create recommendation: %v", err)
	}

	if err := alerts.Create(ctx, &alertdomain.Alert{
		ID:         "dev-alert-001",
		UserID:     devUserID,
		CampaignID: strptr(devCampaignID),
		AlertType:  alertdomain.TypeRecommendationAvailable,
		Title:      "New recommendation available",
		Message:    strptr("A new optimization recommendation is ready for \"Spring Newsletter\"."),
		Severity:   alertdomain.SeverityInfo,
		CreatedAt:  now,
	}); err != nil {
		log.Fatalf("seed: create alert: %v", err)
	}

	log.Printf("seed: done; dev user %s with campaign %s", devUserID, devCampaignID)
}

func strptr(s string) *string { return &s }
