package aggregate

import "github.com/yungbote/mindwell-backend/internal/domain/survey"

const (
	InsightPositiveMood     = "Your mood has been consistently positive"
	InsightLowMood          = "Consider increasing activities that boost your mood"
	InsightExerciseRoutine  = "You've maintained a good exercise routine"
	InsightMoreExercise     = "Consider incorporating more physical activity"
	InsightMeditation       = "Regular meditation practice is beneficial for mental health"
	InsightReduceSocialTime = "Consider reducing social media usage for better mental well-being"
)

const (
	positiveMoodThreshold = 7.0
	lowMoodThreshold      = 4.0
	exerciseRoutineMin    = 15
	exerciseLowMax        = 5
	meditationMin         = 10
)

// Insights applies the fixed recommendation rules in order. The exercise
// rules only fire once exercise has been logged in the window.
func Insights(mood Stats, activityCounts map[string]int, socialMedia []BucketShare, totalSurveys int) []string {
	out := []string{}

	if mood.Count > 0 {
		switch {
		case mood.Mean >= positiveMoodThreshold:
			out = append(out, InsightPositiveMood)
		case mood.Mean <= lowMoodThreshold:
			out = append(out, InsightLowMood)
		}
	}

	if ex, ok := activityCounts[survey.ActivityExercise]; ok && ex > 0 {
		switch {
		case ex >= exerciseRoutineMin:
			out = append(out, InsightExerciseRoutine)
		case ex < exerciseLowMax:
			out = append(out, InsightMoreExercise)
		}
	}

	if activityCounts[survey.ActivityMeditation] >= meditationMin {
		out = append(out, InsightMeditation)
	}

	if totalSurveys > 0 {
		high := 0
		for _, b := range socialMedia {
			for _, v := range survey.HighUsageBuckets() {
				if b.Value == v {
					high += b.Count
				}
			}
		}
		if float64(high) > float64(totalSurveys)/2 {
			out = append(out, InsightReduceSocialTime)
		}
	}
	return out
}
