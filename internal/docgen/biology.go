package docgen

import (
	"strings"
	"time"
)

func (g *Generator) assembleBiology(p Patient, d Diagnosis, doc Doctor, date time.Time, origin string) BiologyPrescription {
	var items []BiologyItem
	note := ""

	raw := FirstNonEmptyList(d.Raw, labPathCandidates...)
	if len(raw) > 0 {
		for _, item := range raw {
			name := itemName(item)
			if name == "" {
				continue
			}
			items = append(items, biologyItem(name, itemField(item, "indication", "reason")))
		}
	}
	if len(items) == 0 {
		items = defaultBiologyItems(d.Primary.Condition)
		note = genericSuggestionNote
	}
	items = ensureBaselineExams(items)

	return BiologyPrescription{
		Header:   g.header("Ordonnance — Examens Biologiques", "BIO", doc, date),
		Patient:  g.patientBlock(p),
		Items:    items,
		Metadata: g.metadata(origin, note),
	}
}

func biologyItem(name, indication string) BiologyItem {
	sample, tube := LabSample(name)
	return BiologyItem{
		Exam:       name,
		Urgency:    LabUrgency(name),
		Fasting:    LabFasting(name),
		SampleType: sample,
		Tube:       tube,
		Indication: StringOf(indication).Or("Bilan diagnostique"),
	}
}

// defaultBiologyItems proposes condition-keyed generic exams when the
// upstream payload carries none.
func defaultBiologyItems(condition string) []BiologyItem {
	c := strings.ToLower(condition)
	var items []BiologyItem
	for _, rule := range defaultLabRules {
		if strings.Contains(c, rule.keyword) {
			for _, exam := range rule.exams {
				items = append(items, biologyItem(exam, genericSuggestionNote))
			}
			break
		}
	}
	return items
}

// ensureBaselineExams guarantees the NFS and CRP baseline exams appear on
// every biology prescription, prepended in stable order when absent.
func ensureBaselineExams(items []BiologyItem) []BiologyItem {
	var missing []BiologyItem
	for _, baseline := range baselineLabExams {
		found := false
		key := strings.ToLower(baseline[:3])
		for _, item := range items {
			if strings.Contains(strings.ToLower(item.Exam), key) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, biologyItem(baseline, "Bilan de base systématique"))
		}
	}
	return append(missing, items...)
}
