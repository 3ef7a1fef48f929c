// Package service computes the derived values persisted as recommendations.
package service

import (
	"errors"
	"sort"
	"strings"
)

// AudienceSegment is one audience slice with its observed engagement.
type AudienceSegment struct {
	Segment        string
	Size           int
	EngagementRate float64
}

// TopSegments returns the n highest-engagement segments, best first. The sort
// is stable so equal rates keep their input order, which keeps the persisted
// suggestion reproducible.
func TopSegments(segments []AudienceSegment, n int) ([]AudienceSegment, error) {
	if len(segments) == 0 {
		return nil, errors.New("audience data must not be empty")
	}
	sorted := make([]AudienceSegment, len(segments))
	copy(sorted, segments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EngagementRate > sorted[j].EngagementRate
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n], nil
}

// SegmentationSuggestion renders the persisted suggested_value text for the
// given top segments.
func SegmentationSuggestion(top []AudienceSegment) string {
	names := make([]string, len(top))
	for i, s := range top {
		names[i] = s.Segment
	}
	return "Focus on: " + strings.Join(names, ", ")
}
