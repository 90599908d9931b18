package docgen

import (
	"strings"
	"testing"
)

func TestBuildAnamnesisPlaceholderWhenEmpty(t *testing.T) {
	got := BuildAnamnesis(Patient{}, Diagnosis{})
	if got != anamnesisPlaceholder {
		t.Errorf("expected placeholder, got %q", got)
	}
}

func TestBuildAnamnesisIncludesOnlyPresentSources(t *testing.T) {
	p := Patient{MedicalHistory: []string{"Diabète type 2"}}
	d := Diagnosis{Raw: map[string]interface{}{
		"clinicalData": map[string]interface{}{
			"chiefComplaint": "Douleur thoracique",
		},
	}}

	got := BuildAnamnesis(p, d)
	if !strings.Contains(got, "MOTIF DE CONSULTATION :\nDouleur thoracique") {
		t.Errorf("chief complaint missing from anamnesis: %q", got)
	}
	if !strings.Contains(got, "ANTÉCÉDENTS MÉDICAUX :\nDiabète type 2") {
		t.Errorf("medical history missing from anamnesis: %q", got)
	}
	if strings.Contains(got, "HISTOIRE DE LA MALADIE") {
		t.Errorf("absent source emitted a sub-paragraph: %q", got)
	}
	if strings.Contains(got, anamnesisPlaceholder) {
		t.Errorf("placeholder emitted alongside content: %q", got)
	}
}

func TestBuildPhysicalExamVitals(t *testing.T) {
	p := Patient{WeightKg: 80, HeightCm: 175}
	d := Diagnosis{Raw: map[string]interface{}{
		"vitalSigns": map[string]interface{}{
			"bloodPressure": "140/90",
			"heartRate":     "82 bpm",
		},
	}}

	got := BuildPhysicalExam(p, d)
	if !strings.Contains(got, "TA: 140/90") || !strings.Contains(got, "FC: 82 bpm") {
		t.Errorf("vitals missing: %q", got)
	}
	if !strings.Contains(got, "IMC 26.1 kg/m²") {
		t.Errorf("anthropometric data missing: %q", got)
	}
}

func TestBuildPhysicalExamPlaceholder(t *testing.T) {
	if got := BuildPhysicalExam(Patient{}, Diagnosis{}); got != physicalPlaceholder {
		t.Errorf("expected placeholder, got %q", got)
	}
}

func TestBuildDiagnosticSynthesis(t *testing.T) {
	d := Diagnosis{
		Primary: PrimaryDiagnosis{
			Condition:  "Hypertension artérielle",
			ICD10:      "I10",
			Confidence: 85,
			Severity:   "modérée",
			Rationale:  "TA élevée sur plusieurs mesures",
		},
		Differential: []DifferentialDiagnosis{
			{Condition: "Hypertension blouse blanche", Probability: 20},
		},
	}

	got := BuildDiagnosticSynthesis(d)
	if !strings.Contains(got, "Hypertension artérielle (CIM-10 : I10)") {
		t.Errorf("retained diagnosis line malformed: %q", got)
	}
	if !strings.Contains(got, "degré de confiance 85%") {
		t.Errorf("confidence missing: %q", got)
	}
	if !strings.Contains(got, "- Hypertension blouse blanche (20%)") {
		t.Errorf("differential missing: %q", got)
	}
}

func TestBuildTherapeuticPlanFromRawPayload(t *testing.T) {
	d := Diagnosis{Raw: map[string]interface{}{
		"treatmentPlan": map[string]interface{}{
			"medications": []interface{}{
				map[string]interface{}{"name": "Amlodipine", "dosage": "5 mg", "frequency": "1 fois par jour"},
			},
			"followUp": "Contrôle tensionnel à 2 semaines",
		},
		"suggestedExams": map[string]interface{}{
			"lab":     []interface{}{"Ionogramme sanguin"},
			"imaging": []interface{}{"ECG de repos"},
		},
	}}

	got := BuildTherapeuticPlan(d)
	if !strings.Contains(got, "- Amlodipine 5 mg, 1 fois par jour") {
		t.Errorf("medication line malformed: %q", got)
	}
	if !strings.Contains(got, "- Ionogramme sanguin (biologie)") {
		t.Errorf("lab exam missing: %q", got)
	}
	if !strings.Contains(got, "- ECG de repos (imagerie)") {
		t.Errorf("imaging exam missing: %q", got)
	}
	if !strings.Contains(got, "SUIVI :\nContrôle tensionnel à 2 semaines") {
		t.Errorf("follow-up missing: %q", got)
	}
}
