package council

import (
	"reflect"
	"testing"

	"github.com/xiaot623/council/internal/domain"
)

func testLabels(labels ...string) *domain.LabelMap {
	models := make([]string, len(labels))
	for i, l := range labels {
		models[i] = "model-" + l
	}
	return domain.NewLabelMap(labels, models)
}

func TestParseRankingStrict(t *testing.T) {
	text := "Response B is the most thorough.\n\nFINAL RANKING:\n1. Response B\n2. Response A\n3. Response C"
	ranking := ParseRanking(text, testLabels("A", "B", "C"))

	if !ranking.WellFormed {
		t.Fatalf("expected well-formed ranking")
	}
	if want := []string{"B", "A", "C"}; !reflect.DeepEqual(ranking.OrderedLabels, want) {
		t.Fatalf("expected %v, got %v", want, ranking.OrderedLabels)
	}
}

func TestParseRankingStrictBareLabels(t *testing.T) {
	text := "final ranking:\n1. B\n2. A"
	ranking := ParseRanking(text, testLabels("A", "B"))

	if !ranking.WellFormed {
		t.Fatalf("expected well-formed ranking for bare-label format")
	}
	if want := []string{"B", "A"}; !reflect.DeepEqual(ranking.OrderedLabels, want) {
		t.Fatalf("expected %v, got %v", want, ranking.OrderedLabels)
	}
}

func TestParseRankingIgnoresTrailingText(t *testing.T) {
	text := "FINAL RANKING:\n1. Response A\n2. Response B\n\nI hope this helps! Response C was not considered."
	ranking := ParseRanking(text, testLabels("A", "B", "C"))

	if !ranking.WellFormed {
		t.Fatalf("expected well-formed ranking")
	}
	if want := []string{"A", "B"}; !reflect.DeepEqual(ranking.OrderedLabels, want) {
		t.Fatalf("text after the ranking block leaked in: %v", ranking.OrderedLabels)
	}
}

func TestParseRankingFallback(t *testing.T) {
	text := "I think Response C is best, better than Response A. Response C stands out."
	ranking := ParseRanking(text, testLabels("A", "B", "C"))

	if ranking.WellFormed {
		t.Fatalf("fallback path must not be marked well-formed")
	}
	if want := []string{"C", "A"}; !reflect.DeepEqual(ranking.OrderedLabels, want) {
		t.Fatalf("expected first-occurrence dedup order %v, got %v", want, ranking.OrderedLabels)
	}
}

func TestParseRankingUnknownLabelDropped(t *testing.T) {
	text := "FINAL RANKING:\n1. Response A\n2. Response Z\n3. Response B"
	ranking := ParseRanking(text, testLabels("A", "B"))

	if !ranking.WellFormed {
		t.Fatalf("a hallucinated label should not demote a strict parse")
	}
	if want := []string{"A", "B"}; !reflect.DeepEqual(ranking.OrderedLabels, want) {
		t.Fatalf("expected unknown label dropped, got %v", ranking.OrderedLabels)
	}
}

func TestParseRankingNothingParseable(t *testing.T) {
	ranking := ParseRanking("I could not decide between the answers.", testLabels("A", "B"))

	if ranking.WellFormed {
		t.Fatalf("empty result must not be well-formed")
	}
	if len(ranking.OrderedLabels) != 0 {
		t.Fatalf("expected no labels, got %v", ranking.OrderedLabels)
	}
}

func TestParseRankingMarkerCaseInsensitive(t *testing.T) {
	text := "Final Ranking:\n\n1. Response B\n2. Response A"
	ranking := ParseRanking(text, testLabels("A", "B"))

	if !ranking.WellFormed {
		t.Fatalf("marker matching must be case-insensitive")
	}
	if want := []string{"B", "A"}; !reflect.DeepEqual(ranking.OrderedLabels, want) {
		t.Fatalf("expected %v, got %v", want, ranking.OrderedLabels)
	}
}

func TestParseRankingDuplicateKeepsFirst(t *testing.T) {
	text := "FINAL RANKING:\n1. Response B\n2. Response B\n3. Response A"
	ranking := ParseRanking(text, testLabels("A", "B"))

	if want := []string{"B", "A"}; !reflect.DeepEqual(ranking.OrderedLabels, want) {
		t.Fatalf("expected repeats deduplicated to %v, got %v", want, ranking.OrderedLabels)
	}
}
