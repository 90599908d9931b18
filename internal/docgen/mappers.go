package docgen

import "strings"

// The mappers translate a free-text term into one display attribute by
// ordered substring matching against the tables. First match in listed order
// wins; unknown terms fall back to a generic default, never an error.

// MedicationClass returns the therapeutic class for a medication name.
func MedicationClass(term string) string {
	t := strings.ToLower(term)
	for _, rule := range medicationClassRules {
		if strings.Contains(t, rule.keyword) {
			return rule.class
		}
	}
	return defaultMedicationClass
}

// MauritianBrand returns a local-market brand name for a DCI.
func MauritianBrand(term string) string {
	t := strings.ToLower(term)
	for _, rule := range mauritianBrandRules {
		if strings.Contains(t, rule.keyword) {
			return rule.brand
		}
	}
	return defaultBrand
}

// LabUrgency returns the urgency bucket for a laboratory exam.
func LabUrgency(term string) string {
	t := strings.ToLower(term)
	for _, rule := range labUrgencyRules {
		if strings.Contains(t, rule.keyword) {
			return rule.urgency
		}
	}
	return defaultLabUrgency
}

// LabFasting returns the fasting requirement for a laboratory exam.
func LabFasting(term string) string {
	t := strings.ToLower(term)
	for _, rule := range labFastingRules {
		if strings.Contains(t, rule.keyword) {
			return rule.fasting
		}
	}
	return defaultLabFasting
}

// LabSample returns the sample type and collection tube for a laboratory exam.
func LabSample(term string) (sample, tube string) {
	t := strings.ToLower(term)
	for _, rule := range labSampleRules {
		if strings.Contains(t, rule.keyword) {
			return rule.sample, rule.tube
		}
	}
	return defaultLabSample.sample, defaultLabSample.tube
}

// ImagingCategory returns the modality category and patient preparation for
// an imaging or functional exam.
func ImagingCategory(term string) (category, preparation string) {
	t := strings.ToLower(term)
	for _, rule := range imagingCategoryRules {
		if strings.Contains(t, rule.keyword) {
			return rule.category, rule.preparation
		}
	}
	return defaultImaging.category, defaultImaging.preparation
}

// ImagingContrast reports the contrast-injection mention for an exam term.
func ImagingContrast(term string) string {
	t := strings.ToLower(term)
	for _, kw := range contrastKeywords {
		if strings.Contains(t, kw) {
			return "Avec injection de produit de contraste"
		}
	}
	return "Sans injection"
}
