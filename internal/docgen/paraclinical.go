package docgen

import (
	"strings"
	"time"
)

func (g *Generator) assembleParaclinical(p Patient, d Diagnosis, doc Doctor, date time.Time, origin string) ParaclinicalPrescription {
	var items []ParaclinicalItem
	note := ""

	raw := FirstNonEmptyList(d.Raw, imagingPathCandidates...)
	if len(raw) > 0 {
		for _, item := range raw {
			name := itemName(item)
			if name == "" {
				continue
			}
			items = append(items, paraclinicalItem(name, itemField(item, "indication", "reason")))
		}
	}
	if len(items) == 0 {
		items = defaultParaclinicalItems(d.Primary.Condition)
		note = genericSuggestionNote
	}
	if len(items) == 0 {
		// An imaging prescription with zero lines is never emitted; the
		// minimum placeholder is an ECG, the least invasive baseline exam.
		items = []ParaclinicalItem{paraclinicalItem("ECG de repos", genericSuggestionNote)}
		note = genericSuggestionNote
	}

	return ParaclinicalPrescription{
		Header:   g.header("Ordonnance — Examens Paracliniques", "IMG", doc, date),
		Patient:  g.patientBlock(p),
		Items:    items,
		Metadata: g.metadata(origin, note),
	}
}

func paraclinicalItem(name, indication string) ParaclinicalItem {
	category, preparation := ImagingCategory(name)
	return ParaclinicalItem{
		Exam:        name,
		Category:    category,
		Preparation: preparation,
		Contrast:    ImagingContrast(name),
		Indication:  StringOf(indication).Or("Bilan diagnostique"),
	}
}

func defaultParaclinicalItems(condition string) []ParaclinicalItem {
	c := strings.ToLower(condition)
	var items []ParaclinicalItem
	for _, rule := range defaultImagingRules {
		if strings.Contains(c, rule.keyword) {
			for _, exam := range rule.exams {
				items = append(items, paraclinicalItem(exam, genericSuggestionNote))
			}
			break
		}
	}
	return items
}
