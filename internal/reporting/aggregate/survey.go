package aggregate

import (
	"sort"
	"strings"

	types "github.com/yungbote/mindwell-backend/internal/domain"
	"github.com/yungbote/mindwell-backend/internal/domain/survey"
)

type ActivityCount struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

type BucketShare struct {
	Value      string  `json:"value"`
	Label      string  `json:"label"`
	Color      string  `json:"color"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CountActivities counts every (survey, activity) pair.
func CountActivities(surveys []*types.Survey) map[string]int {
	out := map[string]int{}
	for _, s := range surveys {
		if s == nil {
			continue
		}
		for _, id := range s.Activities {
			out[id]++
		}
	}
	return out
}

// Distribution returns one share per social-media bucket in canonical order.
func Distribution(surveys []*types.Survey) []BucketShare {
	counts := map[string]int{}
	total := 0
	for _, s := range surveys {
		if s == nil {
			continue
		}
		counts[s.SocialMediaTime]++
		total++
	}
	opts := survey.SocialMediaOptions()
	out := make([]BucketShare, 0, len(opts))
	for _, o := range opts {
		share := BucketShare{Value: o.Value, Label: o.Label, Color: o.Color, Count: counts[o.Value]}
		if total > 0 {
			share.Percentage = float64(share.Count) / float64(total) * 100
		}
		out = append(out, share)
	}
	return out
}

// CustomActivities returns the trimmed, de-duplicated custom labels, sorted.
func CustomActivities(surveys []*types.Survey) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, s := range surveys {
		if s == nil {
			continue
		}
		for _, raw := range s.CustomActivities {
			v := strings.TrimSpace(raw)
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// RankActivities orders counts by frequency, ties broken by catalog order.
// Zero counts are dropped.
func RankActivities(counts map[string]int) []ActivityCount {
	order := map[string]int{}
	for i, o := range survey.ActivityOptions() {
		order[o.ID] = i
	}
	out := make([]ActivityCount, 0, len(counts))
	for id, n := range counts {
		if n <= 0 {
			continue
		}
		out = append(out, ActivityCount{ID: id, Label: survey.ActivityLabel(id), Count: n})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		oi, iok := order[out[i].ID]
		oj, jok := order[out[j].ID]
		switch {
		case iok && jok:
			return oi < oj
		case iok != jok:
			return iok
		default:
			return out[i].ID < out[j].ID
		}
	})
	return out
}

// CatalogActivities lists non-zero counts in catalog order, unknown ids last.
func CatalogActivities(counts map[string]int) []ActivityCount {
	out := []ActivityCount{}
	known := map[string]struct{}{}
	for _, o := range survey.ActivityOptions() {
		known[o.ID] = struct{}{}
		if n := counts[o.ID]; n > 0 {
			out = append(out, ActivityCount{ID: o.ID, Label: o.Label, Count: n})
		}
	}
	var extra []string
	for id, n := range counts {
		if _, ok := known[id]; !ok && n > 0 {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	for _, id := range extra {
		out = append(out, ActivityCount{ID: id, Label: id, Count: counts[id]})
	}
	return out
}
