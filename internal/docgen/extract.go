package docgen

import "strings"

// The upstream AI payload places the same logical collections under several
// different nested paths depending on which call produced it. Each collection
// gets an ordered candidate list; the first path resolving to a non-empty
// value wins. The first entry of each list is the canonical schema, the rest
// are compatibility shims for observed drift.
var (
	labPathCandidates = []string{
		"suggestedExams.lab",
		"expertAnalysis.expert_investigations.laboratory_tests",
		"expertAnalysis.investigations.biology",
		"treatmentPlan.laboratory_tests",
		"examens.biologie",
	}

	imagingPathCandidates = []string{
		"suggestedExams.imaging",
		"expertAnalysis.expert_investigations.imaging_studies",
		"expertAnalysis.investigations.imaging",
		"treatmentPlan.imaging_studies",
		"examens.imagerie",
	}

	medicationPathCandidates = []string{
		"treatmentPlan.medications",
		"expertAnalysis.expert_therapeutics.primary_treatments",
		"treatmentPlan.prescriptions",
		"medications",
	}

	primaryConditionPaths = []string{
		"diagnosis.primary.condition",
		"diagnosis.primary_diagnosis.condition",
		"primaryDiagnosis.condition",
		"diagnosis.condition",
	}
)

// lookupPath resolves a dotted path against nested maps. It never panics on
// missing or mistyped intermediates.
func lookupPath(root map[string]interface{}, path string) (interface{}, bool) {
	if root == nil {
		return nil, false
	}
	keys := strings.Split(path, ".")
	var current interface{} = root
	for _, key := range keys {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// FirstNonEmptyList scans candidate paths in order and returns the first
// value that resolves to a non-empty slice. Missing or mistyped paths are
// skipped; when nothing matches, an empty slice is returned.
func FirstNonEmptyList(root map[string]interface{}, paths ...string) []interface{} {
	for _, path := range paths {
		v, ok := lookupPath(root, path)
		if !ok {
			continue
		}
		if list, ok := v.([]interface{}); ok && len(list) > 0 {
			return list
		}
	}
	return nil
}

// FirstNonEmptyString scans candidate paths in order and returns the first
// value that resolves to a non-blank string; "" when nothing matches.
func FirstNonEmptyString(root map[string]interface{}, paths ...string) string {
	for _, path := range paths {
		v, ok := lookupPath(root, path)
		if !ok {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// FirstNumber scans candidate paths in order and returns the first numeric
// value found; 0 when nothing matches. JSON numbers decode as float64.
func FirstNumber(root map[string]interface{}, paths ...string) float64 {
	for _, path := range paths {
		v, ok := lookupPath(root, path)
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		}
	}
	return 0
}

// itemName extracts a display name from one raw list entry, which may be a
// bare string or an object using any of several name keys.
func itemName(item interface{}) string {
	switch v := item.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]interface{}:
		for _, key := range []string{"name", "exam", "test", "medication", "dci", "label", "title"} {
			if s, ok := v[key].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// itemField extracts a named string field from a raw list entry; "" when the
// entry is not an object or the field is absent.
func itemField(item interface{}, keys ...string) string {
	m, ok := item.(map[string]interface{})
	if !ok {
		return ""
	}
	for _, key := range keys {
		if s, ok := m[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
