package council

import (
	"regexp"
	"strings"

	"github.com/xiaot623/council/internal/domain"
)

var (
	rankingMarker = regexp.MustCompile(`(?i)final ranking\s*:`)
	// One numbered list line: "1. Response A" or "1. A".
	rankingLine = regexp.MustCompile(`^\s*\d+\s*[.)]\s*(?:(?i:response)\s+)?([A-Z]+)\b`)
	// Lenient scan for any mention of a labeled response.
	labelMention = regexp.MustCompile(`(?i:response)\s+([A-Z]+)\b`)
)

// ParseRanking extracts an ordered list of labels from a model's free-text
// evaluation. The strict pass reads the numbered list after a
// "FINAL RANKING:" marker; when that yields nothing, a lenient scan collects
// every "Response <label>" mention in first-occurrence order. WellFormed is
// true only for the strict path. Labels outside knownLabels are dropped
// rather than failing the ranking; repeats keep their first position.
func ParseRanking(rawText string, labelMap *domain.LabelMap) domain.ParsedRanking {
	known := make(map[string]bool, labelMap.Len())
	for _, label := range labelMap.Labels() {
		known[label] = true
	}

	if labels := parseStrict(rawText, known); len(labels) > 0 {
		return domain.ParsedRanking{RawText: rawText, OrderedLabels: labels, WellFormed: true}
	}

	labels := parseLenient(rawText, known)
	return domain.ParsedRanking{RawText: rawText, OrderedLabels: labels, WellFormed: false}
}

// parseStrict reads the numbered list following the ranking marker, stopping
// at the first line that is not a list entry. Text after the list is ignored.
func parseStrict(text string, known map[string]bool) []string {
	loc := rankingMarker.FindStringIndex(text)
	if loc == nil {
		return nil
	}

	var labels []string
	seen := make(map[string]bool)
	started := false
	for _, line := range strings.Split(text[loc[1]:], "\n") {
		m := rankingLine.FindStringSubmatch(line)
		if m == nil {
			if !started && strings.TrimSpace(line) == "" {
				// Blank lines between the marker and the list are fine.
				continue
			}
			break
		}
		started = true
		label := strings.ToUpper(m[1])
		if !known[label] || seen[label] {
			continue
		}
		seen[label] = true
		labels = append(labels, label)
	}
	return labels
}

// parseLenient scans the whole text for labeled-response mentions in order
// of first appearance.
func parseLenient(text string, known map[string]bool) []string {
	var labels []string
	seen := make(map[string]bool)
	for _, m := range labelMention.FindAllStringSubmatch(text, -1) {
		label := strings.ToUpper(m[1])
		if !known[label] || seen[label] {
			continue
		}
		seen[label] = true
		labels = append(labels, label)
	}
	return labels
}
