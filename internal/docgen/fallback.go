package docgen

import "time"

const fallbackNote = "Documents générés à partir de modèles génériques (génération IA indisponible)"

// GenerateFallback produces a complete, internally consistent document set
// from generic templates only, for use when the AI call failed or returned
// something unusable. Inputs are optional: missing patient or doctor fields
// degrade to placeholders so a set is always produced. The output shape is
// identical to the normal path so rendering has a single contract.
func (g *Generator) GenerateFallback(p Patient, doc Doctor, date time.Time) *DocumentSet {
	d := Diagnosis{
		Primary: PrimaryDiagnosis{
			Condition: "Téléconsultation — diagnostic à préciser par le médecin",
			Severity:  "à évaluer",
		},
	}

	set := &DocumentSet{
		Report:       g.assembleReport(p, d, doc, date, originFallback),
		Biology:      g.assembleBiology(p, d, doc, date, originFallback),
		Paraclinical: g.assembleParaclinical(p, d, doc, date, originFallback),
		Medication:   g.assembleMedication(p, d, doc, date, originFallback),
		FallbackUsed: true,
	}

	set.Report.Metadata.Note = fallbackNote
	set.Biology.Metadata.Note = fallbackNote
	set.Paraclinical.Metadata.Note = fallbackNote
	set.Medication.Metadata.Note = fallbackNote

	set.Warnings = Validate(set)
	return set
}
