package performance

import (
	"math"

	"github.com/shopspring/decimal"
)

// ComputeAnalytics summarises reviews and goals. The average only counts
// rated reviews; the completion rate is a percentage rounded to one decimal.
func ComputeAnalytics(reviews []Review, goals []Goal) Analytics {
	a := Analytics{TotalReviews: len(reviews), TotalGoals: len(goals)}

	sum := decimal.Zero
	rated := 0
	for _, r := range reviews {
		if r.Status == ReviewStatusDraft {
			a.PendingReviews++
		}
		if r.OverallRating == nil {
			continue
		}
		rated++
		sum = sum.Add(*r.OverallRating)
		if r.OverallRating.GreaterThanOrEqual(TopPerformerRating) {
			a.TopPerformers++
		}
	}
	if rated > 0 {
		a.AverageRating = sum.Div(decimal.NewFromInt(int64(rated))).Round(1).InexactFloat64()
	}

	completed := 0
	for _, g := range goals {
		if g.Status == GoalStatusCompleted {
			completed++
		}
	}
	if len(goals) > 0 {
		a.GoalCompletionRate = math.Round(float64(completed)/float64(len(goals))*1000) / 10
	}

	return a
}
