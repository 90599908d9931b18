package docgen

import (
	"fmt"
	"strings"
)

// Section builders assemble one narrative block each. A labeled sub-paragraph
// is included iff its source field is present and non-empty; placeholder
// content is never emitted here (that is the fallback generator's job). When
// nothing qualifies, one fixed sentence is returned so rendering never gets
// an empty string.

const (
	anamnesisPlaceholder   = "Anamnèse à compléter lors de la consultation."
	physicalPlaceholder    = "Examen physique à compléter lors de la consultation."
	synthesisPlaceholder   = "Synthèse diagnostique à compléter."
	therapeuticPlaceholder = "Plan thérapeutique à compléter."
)

type sectionBuilder struct {
	paragraphs []string
}

func (b *sectionBuilder) add(label, content string) {
	if strings.TrimSpace(content) == "" {
		return
	}
	b.paragraphs = append(b.paragraphs, label+" :\n"+strings.TrimSpace(content))
}

func (b *sectionBuilder) build(placeholder string) string {
	if len(b.paragraphs) == 0 {
		return placeholder
	}
	return strings.Join(b.paragraphs, "\n\n")
}

// BuildAnamnesis assembles the history section from intake and upstream data.
func BuildAnamnesis(p Patient, d Diagnosis) string {
	var b sectionBuilder

	b.add("MOTIF DE CONSULTATION", FirstNonEmptyString(d.Raw,
		"clinicalData.chiefComplaint",
		"chiefComplaint",
		"anamnesis.chief_complaint"))
	b.add("HISTOIRE DE LA MALADIE", FirstNonEmptyString(d.Raw,
		"clinicalData.historyOfIllness",
		"historyOfIllness",
		"anamnesis.history"))
	b.add("ANTÉCÉDENTS MÉDICAUX", joinNonEmpty(p.MedicalHistory))
	b.add("ALLERGIES", joinNonEmpty(p.Allergies))

	return b.build(anamnesisPlaceholder)
}

// BuildPhysicalExam assembles the physical examination section.
func BuildPhysicalExam(p Patient, d Diagnosis) string {
	var b sectionBuilder

	var vitals []string
	if bp := FirstNonEmptyString(d.Raw, "vitalSigns.bloodPressure", "clinicalData.vitalSigns.bloodPressure"); bp != "" {
		vitals = append(vitals, "TA: "+bp)
	}
	if hr := FirstNonEmptyString(d.Raw, "vitalSigns.heartRate", "clinicalData.vitalSigns.heartRate"); hr != "" {
		vitals = append(vitals, "FC: "+hr)
	}
	if temp := FirstNonEmptyString(d.Raw, "vitalSigns.temperature", "clinicalData.vitalSigns.temperature"); temp != "" {
		vitals = append(vitals, "T°: "+temp)
	}
	if spo2 := FirstNonEmptyString(d.Raw, "vitalSigns.oxygenSaturation", "clinicalData.vitalSigns.spo2"); spo2 != "" {
		vitals = append(vitals, "SpO2: "+spo2)
	}
	b.add("CONSTANTES", strings.Join(vitals, ", "))

	if bmi := p.BMI(); bmi > 0 {
		b.add("DONNÉES ANTHROPOMÉTRIQUES", fmt.Sprintf("Poids %s, taille %s, IMC %s",
			formatWeight(p.WeightKg), formatHeight(p.HeightCm), formatBMI(bmi)))
	}

	b.add("EXAMEN CLINIQUE", FirstNonEmptyString(d.Raw,
		"clinicalData.physicalExam",
		"physicalExam",
		"examination.findings"))

	return b.build(physicalPlaceholder)
}

// BuildDiagnosticSynthesis assembles the diagnostic conclusion section.
func BuildDiagnosticSynthesis(d Diagnosis) string {
	var b sectionBuilder

	if d.Primary.Condition != "" {
		line := d.Primary.Condition
		if d.Primary.ICD10 != "" {
			line += " (CIM-10 : " + d.Primary.ICD10 + ")"
		}
		if d.Primary.Confidence > 0 {
			line += fmt.Sprintf(" — degré de confiance %d%%", d.Primary.Confidence)
		}
		if d.Primary.Severity != "" {
			line += ", sévérité " + d.Primary.Severity
		}
		b.add("DIAGNOSTIC RETENU", line)
	}

	b.add("ARGUMENTAIRE", d.Primary.Rationale)

	if len(d.Differential) > 0 {
		var lines []string
		for _, dd := range d.Differential {
			line := "- " + dd.Condition
			if dd.Probability > 0 {
				line += fmt.Sprintf(" (%d%%)", dd.Probability)
			}
			if dd.Rationale != "" {
				line += " : " + dd.Rationale
			}
			lines = append(lines, line)
		}
		b.add("DIAGNOSTICS DIFFÉRENTIELS", strings.Join(lines, "\n"))
	}

	return b.build(synthesisPlaceholder)
}

// BuildTherapeuticPlan assembles the treatment plan section.
func BuildTherapeuticPlan(d Diagnosis) string {
	var b sectionBuilder

	if meds := FirstNonEmptyList(d.Raw, medicationPathCandidates...); len(meds) > 0 {
		var lines []string
		for _, m := range meds {
			name := itemName(m)
			if name == "" {
				continue
			}
			line := "- " + name
			if dosage := itemField(m, "dosage", "dose"); dosage != "" {
				line += " " + dosage
			}
			if freq := itemField(m, "frequency", "posologie"); freq != "" {
				line += ", " + freq
			}
			lines = append(lines, line)
		}
		b.add("TRAITEMENT MÉDICAMENTEUX", strings.Join(lines, "\n"))
	}

	var exams []string
	for _, item := range FirstNonEmptyList(d.Raw, labPathCandidates...) {
		if name := itemName(item); name != "" {
			exams = append(exams, "- "+name+" (biologie)")
		}
	}
	for _, item := range FirstNonEmptyList(d.Raw, imagingPathCandidates...) {
		if name := itemName(item); name != "" {
			exams = append(exams, "- "+name+" (imagerie)")
		}
	}
	b.add("EXAMENS COMPLÉMENTAIRES", strings.Join(exams, "\n"))

	b.add("SUIVI", FirstNonEmptyString(d.Raw,
		"treatmentPlan.followUp",
		"treatmentPlan.follow_up",
		"followUp"))

	return b.build(therapeuticPlaceholder)
}

func joinNonEmpty(items []string) string {
	var cleaned []string
	for _, s := range items {
		if strings.TrimSpace(s) != "" {
			cleaned = append(cleaned, strings.TrimSpace(s))
		}
	}
	return strings.Join(cleaned, ", ")
}
