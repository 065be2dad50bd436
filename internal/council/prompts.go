package council

import (
	"fmt"
	"math"
	"strings"

	"github.com/xiaot623/council/internal/domain"
)

// stage1Prompt asks a council member the user's question directly.
func stage1Prompt(query string) string {
	return query
}

// stage2Prompt asks an evaluator to rank the anonymized answers. The closing
// instructions pin down the exact block the strict ranking grammar expects.
func stage2Prompt(query string, responses []domain.StageResponse, labelMap *domain.LabelMap) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are evaluating anonymous responses to the following question:\n\n%s\n\n", query)
	b.WriteString("Here are the responses from different models:\n\n")

	for _, r := range responses {
		if r.Failed {
			continue
		}
		label, ok := labelMap.Label(r.Model)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "Response %s:\n%s\n\n", label, r.Content)
	}

	b.WriteString("Evaluate each response for accuracy and insight. ")
	b.WriteString("Then rank them from best to worst.\n\n")
	b.WriteString("End your reply with the heading \"FINAL RANKING:\" followed by a numbered list, one response per line, for example:\n\n")
	b.WriteString("FINAL RANKING:\n1. Response A\n2. Response B\n")
	return b.String()
}

// stage3Prompt gives the chairman everything the council produced, with
// identities restored.
func stage3Prompt(d *domain.Deliberation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are the chairman of an LLM council. Council members answered the following question independently and then ranked each other's anonymized answers.\n\nQuestion:\n%s\n\n", d.Query)

	b.WriteString("Council answers:\n\n")
	for _, r := range d.Stage1 {
		if r.Failed {
			fmt.Fprintf(&b, "%s: (no answer, call failed)\n\n", r.Model)
			continue
		}
		fmt.Fprintf(&b, "%s:\n%s\n\n", r.Model, r.Content)
	}

	if len(d.Rankings) > 0 {
		b.WriteString("Peer evaluations:\n\n")
		for _, ranking := range d.Rankings {
			fmt.Fprintf(&b, "%s ranked: %s\n", ranking.EvaluatorModel, deanonymize(ranking.OrderedLabels, d.LabelMap))
		}
		b.WriteString("\n")
	}

	if len(d.Aggregate) > 0 {
		b.WriteString("Aggregate ranking (lower is better):\n")
		for _, entry := range d.Aggregate {
			if math.IsInf(entry.AveragePosition, 1) {
				fmt.Fprintf(&b, "- %s: unranked\n", entry.Model)
				continue
			}
			fmt.Fprintf(&b, "- %s: average position %.2f over %d votes\n", entry.Model, entry.AveragePosition, entry.VoteCount)
		}
		b.WriteString("\n")
	}

	b.WriteString("Synthesize the best possible final answer to the question, drawing on the strongest parts of the council's work.")
	return b.String()
}

// deanonymize renders an ordered label list as model names.
func deanonymize(labels []string, labelMap *domain.LabelMap) string {
	if len(labels) == 0 {
		return "(nothing parseable)"
	}
	names := make([]string, 0, len(labels))
	for _, label := range labels {
		if model, ok := labelMap.Model(label); ok {
			names = append(names, model)
		}
	}
	return strings.Join(names, " > ")
}
