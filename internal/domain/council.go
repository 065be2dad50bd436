package domain

import (
	"encoding/json"
	"math"
)

// StageResponse is one model's answer in a deliberation stage. Failed calls
// keep their roster slot so positional correspondence is never lost.
type StageResponse struct {
	Model     string `json:"model"`
	Content   string `json:"content,omitempty"`
	Reasoning string `json:"reasoning,omitempty"`
	Failed    bool   `json:"failed,omitempty"`
}

// LabelMap is the bijective mapping between anonymized labels ("A", "B", ...)
// and model identifiers, built once per deliberation from the stage-1
// successful responses and never mutated afterwards.
type LabelMap struct {
	labelToModel map[string]string
	modelToLabel map[string]string
	labels       []string // assignment order
}

// NewLabelMap builds a LabelMap from label/model pairs in assignment order.
func NewLabelMap(labels, models []string) *LabelMap {
	m := &LabelMap{
		labelToModel: make(map[string]string, len(labels)),
		modelToLabel: make(map[string]string, len(labels)),
		labels:       append([]string(nil), labels...),
	}
	for i, label := range labels {
		m.labelToModel[label] = models[i]
		m.modelToLabel[models[i]] = label
	}
	return m
}

// Model returns the model identifier for a label.
func (m *LabelMap) Model(label string) (string, bool) {
	model, ok := m.labelToModel[label]
	return model, ok
}

// Label returns the label for a model identifier.
func (m *LabelMap) Label(model string) (string, bool) {
	label, ok := m.modelToLabel[model]
	return label, ok
}

// Labels returns all labels in assignment order.
func (m *LabelMap) Labels() []string {
	return append([]string(nil), m.labels...)
}

// Len returns the number of label/model pairs.
func (m *LabelMap) Len() int {
	return len(m.labels)
}

// ToMap returns the label→model mapping as a plain map for serialization.
func (m *LabelMap) ToMap() map[string]string {
	out := make(map[string]string, len(m.labelToModel))
	for k, v := range m.labelToModel {
		out[k] = v
	}
	return out
}

// ParsedRanking is one evaluator's ranking of the anonymized responses.
// OrderedLabels may be a subset of all labels when parsing partially fails;
// WellFormed is false whenever the lenient fallback scan produced the result.
type ParsedRanking struct {
	EvaluatorModel string   `json:"evaluator_model"`
	RawText        string   `json:"raw_text"`
	OrderedLabels  []string `json:"ordered_labels"`
	WellFormed     bool     `json:"well_formed"`
}

// AggregateEntry is one model's consensus standing across all rankings.
// AveragePosition is +Inf for models no evaluator ranked.
type AggregateEntry struct {
	Model           string  `json:"model"`
	Label           string  `json:"label"`
	AveragePosition float64 `json:"average_position"`
	VoteCount       int     `json:"vote_count"`
}

// Ranked reports whether at least one evaluator ranked this model.
func (e AggregateEntry) Ranked() bool {
	return e.VoteCount > 0 && !math.IsInf(e.AveragePosition, 1)
}

// aggregateEntryJSON is the wire form; +Inf is not representable in JSON so
// an unranked entry serializes its average as null.
type aggregateEntryJSON struct {
	Model           string   `json:"model"`
	Label           string   `json:"label"`
	AveragePosition *float64 `json:"average_position"`
	VoteCount       int      `json:"vote_count"`
}

// MarshalJSON implements json.Marshaler.
func (e AggregateEntry) MarshalJSON() ([]byte, error) {
	w := aggregateEntryJSON{Model: e.Model, Label: e.Label, VoteCount: e.VoteCount}
	if !math.IsInf(e.AveragePosition, 1) {
		avg := e.AveragePosition
		w.AveragePosition = &avg
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *AggregateEntry) UnmarshalJSON(data []byte) error {
	var w aggregateEntryJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	e.Model = w.Model
	e.Label = w.Label
	e.VoteCount = w.VoteCount
	if w.AveragePosition != nil {
		e.AveragePosition = *w.AveragePosition
	} else {
		e.AveragePosition = math.Inf(1)
	}
	return nil
}

// Deliberation binds one user query to everything the council produced for
// it. Immutable once all stages complete; on a stage-fatal error the earlier
// stages remain populated so callers can inspect what ran.
type Deliberation struct {
	Query     string            `json:"query"`
	Stage1    []StageResponse   `json:"stage1"`
	LabelMap  *LabelMap         `json:"-"`
	Labels    map[string]string `json:"label_to_model,omitempty"`
	Rankings  []ParsedRanking   `json:"rankings,omitempty"`
	Aggregate []AggregateEntry  `json:"aggregate,omitempty"`
	Stage3    string            `json:"stage3,omitempty"`
	Chairman  string            `json:"chairman,omitempty"`
}
