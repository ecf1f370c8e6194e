// Package summary computes class-level statistics from completed work
// items. Summaries are derived on demand and hold no state.
package summary

import (
	"math"
	"sort"

	"github.com/gradeflow/gradeflow/internal/model"
)

// passThreshold is the fixed percentage at or above which an item counts
// as passing. Deliberately not configurable.
const passThreshold = 60

// topMisconceptions caps how many misconception strings a summary reports.
const topMisconceptions = 5

// Summarize computes a BatchSummary over the given items. Only Completed
// items with a result contribute; with none, a zeroed summary is returned.
func Summarize(items []model.WorkItem) model.BatchSummary {
	var completed []model.WorkItem
	for _, item := range items {
		if item.Status == model.StatusCompleted && item.Result != nil {
			completed = append(completed, item)
		}
	}

	if len(completed) == 0 {
		return model.BatchSummary{}
	}

	summary := model.BatchSummary{
		TotalStudents: len(completed),
		HighestScore:  completed[0].Result.TotalScore.Percentage,
		LowestScore:   completed[0].Result.TotalScore.Percentage,
	}

	sum := 0
	passing := 0
	frequencies := make(map[string]int)

	for _, item := range completed {
		pct := item.Result.TotalScore.Percentage
		sum += pct
		if pct >= passThreshold {
			passing++
		}
		if pct > summary.HighestScore {
			summary.HighestScore = pct
		}
		if pct < summary.LowestScore {
			summary.LowestScore = pct
		}

		bucketOf(&summary.ScoreDistribution, pct)

		// Misconceptions are compared by exact string equality; no
		// fuzzy clustering.
		for _, m := range item.Result.Misconceptions {
			frequencies[m]++
		}
	}

	summary.AverageScore = int(math.Round(float64(sum) / float64(len(completed))))
	summary.PassRate = int(math.Round(100 * float64(passing) / float64(len(completed))))
	summary.CommonMisconceptions = rankMisconceptions(frequencies)

	return summary
}

// bucketOf increments the fixed 10-wide score bucket for a percentage.
func bucketOf(dist *model.ScoreDistribution, pct int) {
	switch {
	case pct < 60:
		dist.Below60++
	case pct < 70:
		dist.Sixties++
	case pct < 80:
		dist.Seventies++
	case pct < 90:
		dist.Eighties++
	default:
		dist.Nineties++
	}
}

// rankMisconceptions sorts misconceptions by frequency descending, ties
// broken lexically for determinism, and keeps the top five.
func rankMisconceptions(frequencies map[string]int) []model.MisconceptionCount {
	if len(frequencies) == 0 {
		return nil
	}

	counts := make([]model.MisconceptionCount, 0, len(frequencies))
	for text, count := range frequencies {
		counts = append(counts, model.MisconceptionCount{Text: text, Count: count})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Text < counts[j].Text
	})

	if len(counts) > topMisconceptions {
		counts = counts[:topMisconceptions]
	}
	return counts
}
