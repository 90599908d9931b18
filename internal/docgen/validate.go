package docgen

import "fmt"

// Validate checks that each assembled document carries the minimally required
// header and patient fields. It collects warnings and never rejects: gaps are
// diagnostic information for the caller to log, not errors.
func Validate(set *DocumentSet) []string {
	var warnings []string

	checkDoc := func(name string, h Header, p PatientBlock) {
		if h.DoctorName == "" {
			warnings = append(warnings, fmt.Sprintf("%s: nom du médecin absent de l'en-tête", name))
		}
		if h.DocumentNumber == "" {
			warnings = append(warnings, fmt.Sprintf("%s: numéro de document absent", name))
		}
		if h.Date == "" {
			warnings = append(warnings, fmt.Sprintf("%s: date absente de l'en-tête", name))
		}
		if p.FullName == "" {
			warnings = append(warnings, fmt.Sprintf("%s: identité patient absente", name))
		}
	}

	checkDoc("compte-rendu", set.Report.Header, set.Report.Patient)
	checkDoc("ordonnance biologie", set.Biology.Header, set.Biology.Patient)
	checkDoc("ordonnance paraclinique", set.Paraclinical.Header, set.Paraclinical.Patient)
	checkDoc("ordonnance médicaments", set.Medication.Header, set.Medication.Patient)

	if len(set.Biology.Items) == 0 {
		warnings = append(warnings, "ordonnance biologie: aucun examen prescrit")
	}
	if len(set.Medication.Items) == 0 {
		warnings = append(warnings, "ordonnance médicaments: aucune ligne de prescription")
	}

	return warnings
}
