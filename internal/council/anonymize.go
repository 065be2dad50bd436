package council

import "github.com/xiaot623/council/internal/domain"

// Anonymize assigns labels to the successful responses in sequence order and
// returns the resulting label/model mapping. Labels follow roster order, not
// completion order, so the same input always yields the same mapping. Failed
// responses are skipped and never consume a label.
func Anonymize(responses []domain.StageResponse) *domain.LabelMap {
	var labels, models []string
	for _, r := range responses {
		if r.Failed {
			continue
		}
		labels = append(labels, labelFor(len(labels)))
		models = append(models, r.Model)
	}
	return domain.NewLabelMap(labels, models)
}

// labelFor returns the label for the i-th successful response: A..Z, then
// AA, AB and so on once the roster outgrows the alphabet.
func labelFor(i int) string {
	var buf []byte
	n := i
	for {
		buf = append([]byte{byte('A' + n%26)}, buf...)
		n = n/26 - 1
		if n < 0 {
			break
		}
	}
	return string(buf)
}
