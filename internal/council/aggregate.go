package council

import (
	"math"
	"sort"

	"github.com/xiaot623/council/internal/domain"
)

// Aggregate combines the parsed rankings into a single consensus ordering.
// A label's position in one ranking is its 1-based index; a label absent
// from a ranking gets no vote from that evaluator rather than a worst-case
// score. Labels no evaluator ranked sort last with an infinite average.
// Ties break by vote count (more votes first), then by stage-1 arrival
// order, so the output is deterministic.
func Aggregate(rankings []domain.ParsedRanking, labelMap *domain.LabelMap) []domain.AggregateEntry {
	labels := labelMap.Labels()

	positions := make(map[string][]int, len(labels))
	for _, ranking := range rankings {
		for i, label := range ranking.OrderedLabels {
			positions[label] = append(positions[label], i+1)
		}
	}

	arrival := make(map[string]int, len(labels))
	entries := make([]domain.AggregateEntry, 0, len(labels))
	for i, label := range labels {
		arrival[label] = i
		model, _ := labelMap.Model(label)
		entry := domain.AggregateEntry{
			Model:           model,
			Label:           label,
			AveragePosition: math.Inf(1),
		}
		if votes := positions[label]; len(votes) > 0 {
			sum := 0
			for _, p := range votes {
				sum += p
			}
			entry.AveragePosition = float64(sum) / float64(len(votes))
			entry.VoteCount = len(votes)
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(a, b int) bool {
		if entries[a].AveragePosition != entries[b].AveragePosition {
			return entries[a].AveragePosition < entries[b].AveragePosition
		}
		if entries[a].VoteCount != entries[b].VoteCount {
			return entries[a].VoteCount > entries[b].VoteCount
		}
		return arrival[entries[a].Label] < arrival[entries[b].Label]
	})

	return entries
}
