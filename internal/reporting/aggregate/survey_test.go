package aggregate

import (
	"math"
	"reflect"
	"testing"

	"gorm.io/datatypes"

	types "github.com/yungbote/mindwell-backend/internal/domain"
)

func surveyRow(bucket string, activities []string, custom ...string) *types.Survey {
	return &types.Survey{
		Activities:       datatypes.JSONSlice[string](activities),
		CustomActivities: datatypes.JSONSlice[string](custom),
		SocialMediaTime:  bucket,
	}
}

func TestCountActivitiesSumsPairs(t *testing.T) {
	rows := []*types.Survey{
		surveyRow("<1h", []string{"work", "exercise"}),
		surveyRow("1-3h", []string{"exercise"}),
		surveyRow(">5h", nil),
		surveyRow("3-5h", []string{"meditation", "work", "hobbies"}),
	}
	counts := CountActivities(rows)

	pairs := 0
	for _, r := range rows {
		pairs += len(r.Activities)
	}
	sum := 0
	for _, n := range counts {
		sum += n
	}
	if sum != pairs {
		t.Fatalf("activity sum: want=%d got=%d", pairs, sum)
	}
	if counts["exercise"] != 2 || counts["work"] != 2 {
		t.Fatalf("counts: got=%v", counts)
	}
}

func TestDistributionPercentages(t *testing.T) {
	t.Run("sums to 100", func(t *testing.T) {
		rows := []*types.Survey{
			surveyRow("<1h", nil), surveyRow("<1h", nil), surveyRow("3-5h", nil),
		}
		dist := Distribution(rows)
		if len(dist) != 4 {
			t.Fatalf("buckets: want=4 got=%d", len(dist))
		}
		want := []string{"<1h", "1-3h", "3-5h", ">5h"}
		var pct float64
		for i, b := range dist {
			if b.Value != want[i] {
				t.Fatalf("bucket %d: want=%q got=%q", i, want[i], b.Value)
			}
			pct += b.Percentage
		}
		if math.Abs(pct-100) > 1e-9 {
			t.Fatalf("percentage sum: want=100 got=%v", pct)
		}
		if dist[0].Count != 2 || dist[0].Label != "Less than 1 hour" {
			t.Fatalf("first bucket: got=%+v", dist[0])
		}
	})

	t.Run("empty is zero", func(t *testing.T) {
		for _, b := range Distribution(nil) {
			if b.Count != 0 || b.Percentage != 0 {
				t.Fatalf("empty bucket %q: got=%+v", b.Value, b)
			}
		}
	})
}

func TestCustomActivitiesDedupedAndSorted(t *testing.T) {
	rows := []*types.Survey{
		surveyRow("<1h", nil, "yoga", " piano "),
		surveyRow("<1h", nil, "piano", "Baking"),
	}
	got := CustomActivities(rows)
	want := []string{"Baking", "piano", "yoga"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("custom activities: want=%v got=%v", want, got)
	}
	if got := CustomActivities(nil); got == nil || len(got) != 0 {
		t.Fatalf("custom activities empty: want empty slice got=%v", got)
	}
}

func TestRankActivitiesTiesFollowCatalog(t *testing.T) {
	got := RankActivities(map[string]int{"creative": 2, "work": 2, "exercise": 5, "hobbies": 0})
	ids := make([]string, len(got))
	for i, a := range got {
		ids[i] = a.ID
	}
	want := []string{"exercise", "work", "creative"}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("rank: want=%v got=%v", want, ids)
	}
	if got[0].Label != "Exercise" {
		t.Fatalf("label: want=%q got=%q", "Exercise", got[0].Label)
	}
}
