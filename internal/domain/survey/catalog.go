package survey

import (
	"fmt"
	"strings"
)

type ActivityOption struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Category string `json:"category"`
}

type SocialMediaOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color"`
}

const (
	ActivityWork        = "work"
	ActivityExercise    = "exercise"
	ActivityMeditation  = "meditation"
	ActivitySocializing = "socializing"
	ActivityHobbies     = "hobbies"
	ActivityLearning    = "learning"
	ActivityOutdoors    = "outdoors"
	ActivityCreative    = "creative"
)

const (
	SocialMediaUnder1h = "<1h"
	SocialMedia1to3h   = "1-3h"
	SocialMedia3to5h   = "3-5h"
	SocialMediaOver5h  = ">5h"
)

const (
	MaxCustomActivities     = 3
	CustomActivityMaxLength = 50
	AnalysisWindowDays      = 30
)

var activityOptions = []ActivityOption{
	{ActivityWork, "Work/Study", "productivity"},
	{ActivityExercise, "Exercise", "health"},
	{ActivityMeditation, "Meditation/Relaxation", "wellness"},
	{ActivitySocializing, "Socializing", "social"},
	{ActivityHobbies, "Hobbies", "leisure"},
	{ActivityLearning, "Learning/Reading", "growth"},
	{ActivityOutdoors, "Outdoor Activities", "health"},
	{ActivityCreative, "Creative Work", "leisure"},
}

// Ordered from least to most usage.
var socialMediaOptions = []SocialMediaOption{
	{SocialMediaUnder1h, "Less than 1 hour", "green"},
	{SocialMedia1to3h, "1-3 hours", "yellow"},
	{SocialMedia3to5h, "3-5 hours", "orange"},
	{SocialMediaOver5h, "More than 5 hours", "red"},
}

var categoryLabels = map[string]string{
	"productivity": "Productivity",
	"health":       "Health & Fitness",
	"wellness":     "Mental Wellness",
	"social":       "Social",
	"leisure":      "Leisure",
	"growth":       "Personal Growth",
}

func ActivityOptions() []ActivityOption {
	return append([]ActivityOption(nil), activityOptions...)
}

func SocialMediaOptions() []SocialMediaOption {
	return append([]SocialMediaOption(nil), socialMediaOptions...)
}

func CategoryLabels() map[string]string {
	out := make(map[string]string, len(categoryLabels))
	for k, v := range categoryLabels {
		out[k] = v
	}
	return out
}

// HighUsageBuckets are the two heaviest social-media buckets.
func HighUsageBuckets() []string {
	return []string{SocialMedia3to5h, SocialMediaOver5h}
}

func IsActivity(id string) bool {
	for _, o := range activityOptions {
		if o.ID == id {
			return true
		}
	}
	return false
}

func IsSocialMediaBucket(v string) bool {
	for _, o := range socialMediaOptions {
		if o.Value == v {
			return true
		}
	}
	return false
}

// ActivityLabel returns the human label for id, or id itself when unknown.
func ActivityLabel(id string) string {
	for _, o := range activityOptions {
		if o.ID == id {
			return o.Label
		}
	}
	return id
}

func SocialMediaLabel(v string) string {
	for _, o := range socialMediaOptions {
		if o.Value == v {
			return o.Label
		}
	}
	return v
}

// ValidateActivities rejects ids outside the closed enumeration and duplicates.
func ValidateActivities(ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if !IsActivity(id) {
			return fmt.Errorf("unknown activity %q", id)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("duplicate activity %q", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// NormalizeCustomActivities trims entries, drops blanks and enforces the size limits.
func NormalizeCustomActivities(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if len([]rune(s)) > CustomActivityMaxLength {
			return nil, fmt.Errorf("custom activity longer than %d characters", CustomActivityMaxLength)
		}
		out = append(out, s)
	}
	if len(out) > MaxCustomActivities {
		return nil, fmt.Errorf("at most %d custom activities allowed", MaxCustomActivities)
	}
	return out, nil
}
