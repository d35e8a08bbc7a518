package model

import (
	"strconv"
	"strings"
	"time"
)

// AI post styles.
const (
	StyleInformative     = "informative"
	StyleMotivational    = "motivational"
	StyleQuestion        = "question"
	StyleTip             = "tip"
	StyleIndustryInsight = "industry_insight"
)

// Settings is the singleton application configuration row edited from the
// dashboard. Token lifecycle fields live in PageCredential, not here.
type Settings struct {
	ID                   int64     `json:"id"`
	PostsPerDay          int       `json:"posts_per_day"`
	PostingHours         string    `json:"posting_hours"` // comma-separated hours, e.g. "9,14,19"
	Enabled              bool      `json:"enabled"`
	OpenAIAPIKey         string    `json:"-"`
	AIEnhancementEnabled bool      `json:"ai_enhancement_enabled"`
	AIPostStyle          string    `json:"ai_post_style"`
	LastUpdated          time.Time `json:"last_updated"`
}

// PostingHourList parses PostingHours into a list of hours, dropping
// anything that is not a valid hour of day.
func (s *Settings) PostingHourList() []int {
	var hours []int
	for _, part := range strings.Split(s.PostingHours, ",") {
		h, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || h < 0 || h > 23 {
			continue
		}
		hours = append(hours, h)
	}
	return hours
}
