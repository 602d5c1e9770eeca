package aggregate

import (
	"reflect"
	"testing"
)

func shares(counts map[string]int) []BucketShare {
	out := []BucketShare{}
	for _, v := range []string{"<1h", "1-3h", "3-5h", ">5h"} {
		out = append(out, BucketShare{Value: v, Count: counts[v]})
	}
	return out
}

func TestInsights(t *testing.T) {
	cases := []struct {
		name       string
		mood       Stats
		activities map[string]int
		social     map[string]int
		total      int
		want       []string
	}{
		{"no data", Stats{}, nil, nil, 0, []string{}},
		{"positive mood", Stats{Mean: 8.33, Count: 3}, nil, nil, 0, []string{InsightPositiveMood}},
		{"low mood", Stats{Mean: 3, Count: 2}, nil, nil, 0, []string{InsightLowMood}},
		{"middle mood", Stats{Mean: 5.5, Count: 2}, nil, nil, 0, []string{}},
		{"exercise routine", Stats{}, map[string]int{"exercise": 15}, nil, 15, []string{InsightExerciseRoutine}},
		{"little exercise", Stats{}, map[string]int{"exercise": 2}, nil, 2, []string{InsightMoreExercise}},
		{"meditation", Stats{}, map[string]int{"meditation": 10}, nil, 10, []string{InsightMeditation}},
		{"heavy social media", Stats{}, nil, map[string]int{">5h": 2, "3-5h": 1, "<1h": 2}, 5, []string{InsightReduceSocialTime}},
		{"exactly half is not heavy", Stats{}, nil, map[string]int{">5h": 1, "<1h": 1}, 2, []string{}},
		{
			"all rules in order",
			Stats{Mean: 9, Count: 4},
			map[string]int{"exercise": 20, "meditation": 12},
			map[string]int{">5h": 20},
			20,
			[]string{InsightPositiveMood, InsightExerciseRoutine, InsightMeditation, InsightReduceSocialTime},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Insights(tc.mood, tc.activities, shares(tc.social), tc.total)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("insights: want=%v got=%v", tc.want, got)
			}
		})
	}
}
