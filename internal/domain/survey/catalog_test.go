package survey

import (
	"strings"
	"testing"
	"time"
)

func TestValidateActivities(t *testing.T) {
	t.Parallel()
	if err := ValidateActivities([]string{"work", "exercise", "creative"}); err != nil {
		t.Fatalf("valid ids: unexpected err=%v", err)
	}
	if err := ValidateActivities(nil); err != nil {
		t.Fatalf("empty: unexpected err=%v", err)
	}
	if err := ValidateActivities([]string{"work", "napping"}); err == nil {
		t.Fatalf("unknown id: expected error")
	}
	if err := ValidateActivities([]string{"work", "work"}); err == nil {
		t.Fatalf("duplicate id: expected error")
	}
}

func TestNormalizeCustomActivities(t *testing.T) {
	t.Parallel()
	got, err := NormalizeCustomActivities([]string{"  gardening ", "", "chess"})
	if err != nil {
		t.Fatalf("NormalizeCustomActivities: %v", err)
	}
	if len(got) != 2 || got[0] != "gardening" || got[1] != "chess" {
		t.Fatalf("normalized: got=%v", got)
	}
	if _, err := NormalizeCustomActivities([]string{"a", "b", "c", "d"}); err == nil {
		t.Fatalf("too many: expected error")
	}
	if _, err := NormalizeCustomActivities([]string{strings.Repeat("x", 51)}); err == nil {
		t.Fatalf("too long: expected error")
	}
}

func TestSocialMediaBuckets(t *testing.T) {
	t.Parallel()
	for _, v := range []string{"<1h", "1-3h", "3-5h", ">5h"} {
		if !IsSocialMediaBucket(v) {
			t.Fatalf("bucket %q: want valid", v)
		}
	}
	if IsSocialMediaBucket("2h") {
		t.Fatalf("bucket 2h: want invalid")
	}
	if got := SocialMediaLabel(">5h"); got != "More than 5 hours" {
		t.Fatalf("label: want=%q got=%q", "More than 5 hours", got)
	}
	if got := ActivityLabel("meditation"); got != "Meditation/Relaxation" {
		t.Fatalf("activity label: want=%q got=%q", "Meditation/Relaxation", got)
	}
}

func TestParseDay(t *testing.T) {
	t.Parallel()
	if _, err := ParseDay("2024-13-01"); err == nil {
		t.Fatalf("ParseDay: expected error for bad month")
	}
	d, err := ParseDay("2024-02-29")
	if err != nil {
		t.Fatalf("ParseDay: %v", err)
	}
	if got := time.Time(d).Format(DateLayout); got != "2024-02-29" {
		t.Fatalf("ParseDay: want=%q got=%q", "2024-02-29", got)
	}
	if got := time.Time(d).Location(); got != time.UTC {
		t.Fatalf("ParseDay location: want=UTC got=%v", got)
	}
}
