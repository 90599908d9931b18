package docgen

import (
	"strings"
	"time"
)

func (g *Generator) assembleMedication(p Patient, d Diagnosis, doc Doctor, date time.Time, origin string) MedicationPrescription {
	var items []MedicationItem
	note := ""

	raw := FirstNonEmptyList(d.Raw, medicationPathCandidates...)
	if len(raw) > 0 {
		for _, item := range raw {
			name := itemName(item)
			if name == "" {
				continue
			}
			items = append(items, medicationItem(name, item))
		}
	}
	if len(items) == 0 {
		items = defaultMedicationItems(d.Primary.Condition)
		note = genericSuggestionNote
	}

	return MedicationPrescription{
		Header:   g.header("Ordonnance Médicale", "ORD", doc, date),
		Patient:  g.patientBlock(p),
		Items:    items,
		Metadata: g.metadata(origin, note),
	}
}

func medicationItem(name string, raw interface{}) MedicationItem {
	return MedicationItem{
		DCI:               name,
		Brand:             MauritianBrand(name),
		Class:             MedicationClass(name),
		Dosage:            StringOf(itemField(raw, "dosage", "dose")).Or("Selon prescription"),
		Frequency:         StringOf(itemField(raw, "frequency", "posologie")).Or("Selon prescription"),
		Duration:          StringOf(itemField(raw, "duration", "durée", "duree")).Or("Selon évolution"),
		Quantity:          StringOf(itemField(raw, "quantity", "quantité", "quantite")).Or("Quantité suffisante"),
		Instructions:      StringOf(itemField(raw, "instructions", "advice")).Or("Suivre la posologie indiquée"),
		Contraindications: StringOf(itemField(raw, "contraindications", "contre_indications")).Or("Se référer à la notice"),
		Availability:      medicationAvailability,
	}
}

// defaultMedicationItems proposes generic placeholder lines when the upstream
// payload carries no medication. A generic analgesic is always included;
// condition keywords may add one more line. These are suggestions for the
// doctor to review, not clinical decisions.
func defaultMedicationItems(condition string) []MedicationItem {
	c := strings.ToLower(condition)
	var items []MedicationItem
	for _, rule := range defaultMedicationRules {
		if strings.Contains(c, rule.keyword) {
			item := rule.item
			item.Brand = MauritianBrand(item.DCI)
			item.Class = MedicationClass(item.DCI)
			item.Availability = medicationAvailability
			item.Instructions = item.Instructions + " — " + genericSuggestionNote
			items = append(items, item)
			break
		}
	}

	analgesic := genericAnalgesic
	analgesic.Brand = MauritianBrand(analgesic.DCI)
	analgesic.Class = MedicationClass(analgesic.DCI)
	analgesic.Availability = medicationAvailability
	analgesic.Instructions = analgesic.Instructions + " — " + genericSuggestionNote
	items = append(items, analgesic)

	return items
}
