package docgen

import "strings"

// ParseDiagnosis builds a typed Diagnosis from the raw upstream payload.
// The canonical schema is diagnosis.primary / diagnosis.differential; the
// extractor candidate lists absorb the other shapes the upstream has been
// observed to produce.
func ParseDiagnosis(raw map[string]interface{}) Diagnosis {
	d := Diagnosis{Raw: raw}
	if raw == nil {
		return d
	}

	d.Primary = PrimaryDiagnosis{
		Condition: FirstNonEmptyString(raw, primaryConditionPaths...),
		ICD10: FirstNonEmptyString(raw,
			"diagnosis.primary.icd10",
			"diagnosis.primary.icd10Code",
			"diagnosis.primary.icd_code",
			"primaryDiagnosis.icd10"),
		Confidence: int(FirstNumber(raw,
			"diagnosis.primary.confidence",
			"diagnosis.primary.confidenceLevel",
			"primaryDiagnosis.confidence")),
		Severity: FirstNonEmptyString(raw,
			"diagnosis.primary.severity",
			"primaryDiagnosis.severity"),
		Rationale: FirstNonEmptyString(raw,
			"diagnosis.primary.rationale",
			"diagnosis.primary.detailedAnalysis",
			"diagnosis.primary.clinical_reasoning",
			"primaryDiagnosis.rationale"),
	}

	for _, item := range FirstNonEmptyList(raw,
		"diagnosis.differential",
		"diagnosis.differentialDiagnoses",
		"differentialDiagnosis") {
		condition := itemField(item, "condition", "name", "diagnosis")
		if condition == "" {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				condition = strings.TrimSpace(s)
			}
		}
		if condition == "" {
			continue
		}
		dd := DifferentialDiagnosis{
			Condition: condition,
			Rationale: itemField(item, "rationale", "reasoning"),
		}
		if m, ok := item.(map[string]interface{}); ok {
			if p, ok := m["probability"].(float64); ok {
				dd.Probability = int(p)
			}
		}
		d.Differential = append(d.Differential, dd)
	}

	return d
}

// UsableForGeneration reports whether the diagnosis carries the minimum
// needed for document generation. When false the caller should take the
// fallback path.
func (d Diagnosis) UsableForGeneration() bool {
	return strings.TrimSpace(d.Primary.Condition) != ""
}
