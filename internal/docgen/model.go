// Package docgen turns a patient record, an AI diagnostic payload and a
// doctor profile into the four standard consultation documents used by the
// practice (consultation report, biology prescription, paraclinical
// prescription, medication prescription), formatted per Mauritius Medical
// Council conventions.
//
// The transform is pure and stateless: documents are values, created fresh on
// every call. Missing optional data degrades to placeholder text so the
// rendering layer never needs nil checks; only a missing patient name or a
// missing primary condition is an error.
package docgen

import (
	"fmt"
	"strings"
	"time"
)

// Patient is the intake record consumed by the generator. Read-only here.
type Patient struct {
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	Age            int      `json:"age"`
	Gender         string   `json:"gender"`
	WeightKg       float64  `json:"weight_kg"`
	HeightCm       float64  `json:"height_cm"`
	Allergies      []string `json:"allergies"`
	MedicalHistory []string `json:"medical_history"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email"`
	Address        string   `json:"address"`
}

// FullName returns "FirstName LastName" with surrounding whitespace trimmed.
func (p Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// BMI returns the body mass index, or 0 when weight or height is missing.
func (p Patient) BMI() float64 {
	if p.WeightKg <= 0 || p.HeightCm <= 0 {
		return 0
	}
	h := p.HeightCm / 100
	return p.WeightKg / (h * h)
}

// Doctor is the prescribing doctor's profile.
type Doctor struct {
	FullName       string `json:"full_name"`
	Qualifications string `json:"qualifications"`
	Specialty      string `json:"specialty"`
	RegistrationNo string `json:"registration_no"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Address        string `json:"address"`
}

// PrimaryDiagnosis is the retained diagnostic hypothesis.
type PrimaryDiagnosis struct {
	Condition  string `json:"condition"`
	ICD10      string `json:"icd10"`
	Confidence int    `json:"confidence"`
	Severity   string `json:"severity"`
	Rationale  string `json:"rationale"`
}

// DifferentialDiagnosis is one alternative hypothesis.
type DifferentialDiagnosis struct {
	Condition   string `json:"condition"`
	Probability int    `json:"probability"`
	Rationale   string `json:"rationale"`
}

// Diagnosis is the typed view of the upstream AI payload. Raw keeps the full
// decoded JSON because suggested exams and medications drift between several
// shapes depending on which upstream path produced them; the extractor scans
// Raw with an ordered candidate list instead of trusting one schema.
type Diagnosis struct {
	Primary      PrimaryDiagnosis        `json:"primary"`
	Differential []DifferentialDiagnosis `json:"differential"`
	Raw          map[string]interface{}  `json:"-"`
}

// ClinicInfo identifies the practice on document headers.
type ClinicInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Header is the common document header block. Always fully populated;
// unknown fields carry placeholder text, never empty strings.
type Header struct {
	DocumentNumber       string `json:"document_number"`
	Title                string `json:"title"`
	DoctorName           string `json:"doctor_name"`
	DoctorQualifications string `json:"doctor_qualifications"`
	DoctorSpecialty      string `json:"doctor_specialty"`
	RegistrationNo       string `json:"registration_no"`
	ClinicName           string `json:"clinic_name"`
	ClinicAddress        string `json:"clinic_address"`
	ClinicPhone          string `json:"clinic_phone"`
	Date                 string `json:"date"`
}

// PatientBlock is the common patient identification block.
type PatientBlock struct {
	FullName  string `json:"full_name"`
	Age       string `json:"age"`
	Gender    string `json:"gender"`
	Weight    string `json:"weight"`
	Height    string `json:"height"`
	BMI       string `json:"bmi"`
	Allergies string `json:"allergies"`
}

// Metadata records how a document came to be.
type Metadata struct {
	GeneratedAt time.Time `json:"generated_at"`
	Origin      string    `json:"origin"` // "ai" or "fallback"
	Note        string    `json:"note,omitempty"`
}

// ReportSections holds the four narrative sections of the consultation report.
type ReportSections struct {
	Anamnesis           string `json:"anamnesis"`
	PhysicalExam        string `json:"physical_exam"`
	DiagnosticSynthesis string `json:"diagnostic_synthesis"`
	TherapeuticPlan     string `json:"therapeutic_plan"`
}

// ConsultationReport is the narrative consultation document.
type ConsultationReport struct {
	Header   Header         `json:"header"`
	Patient  PatientBlock   `json:"patient"`
	Sections ReportSections `json:"sections"`
	Metadata Metadata       `json:"metadata"`
}

// BiologyItem is one prescribed laboratory exam.
type BiologyItem struct {
	Exam       string `json:"exam"`
	Urgency    string `json:"urgency"`
	Fasting    string `json:"fasting"`
	SampleType string `json:"sample_type"`
	Tube       string `json:"tube"`
	Indication string `json:"indication"`
}

// BiologyPrescription is the laboratory prescription document.
type BiologyPrescription struct {
	Header   Header        `json:"header"`
	Patient  PatientBlock  `json:"patient"`
	Items    []BiologyItem `json:"items"`
	Metadata Metadata      `json:"metadata"`
}

// ParaclinicalItem is one prescribed imaging or functional exam.
type ParaclinicalItem struct {
	Exam        string `json:"exam"`
	Category    string `json:"category"`
	Preparation string `json:"preparation"`
	Contrast    string `json:"contrast"`
	Indication  string `json:"indication"`
}

// ParaclinicalPrescription is the imaging/functional-exam prescription.
type ParaclinicalPrescription struct {
	Header   Header             `json:"header"`
	Patient  PatientBlock       `json:"patient"`
	Items    []ParaclinicalItem `json:"items"`
	Metadata Metadata           `json:"metadata"`
}

// MedicationItem is one prescribed medication line.
type MedicationItem struct {
	DCI               string `json:"dci"`
	Brand             string `json:"brand"`
	Class             string `json:"class"`
	Dosage            string `json:"dosage"`
	Frequency         string `json:"frequency"`
	Duration          string `json:"duration"`
	Quantity          string `json:"quantity"`
	Instructions      string `json:"instructions"`
	Contraindications string `json:"contraindications"`
	Availability      string `json:"availability"`
}

// MedicationPrescription is the medication prescription document.
type MedicationPrescription struct {
	Header   Header           `json:"header"`
	Patient  PatientBlock     `json:"patient"`
	Items    []MedicationItem `json:"items"`
	Metadata Metadata         `json:"metadata"`
}

// DocumentSet bundles the four documents produced by one generation call.
type DocumentSet struct {
	Report       ConsultationReport       `json:"report"`
	Biology      BiologyPrescription      `json:"biology"`
	Paraclinical ParaclinicalPrescription `json:"paraclinical"`
	Medication   MedicationPrescription   `json:"medication"`
	FallbackUsed bool                     `json:"fallback_used"`
	Warnings     []string                 `json:"warnings,omitempty"`
}

func formatAge(age int) string {
	if age <= 0 {
		return "Âge non renseigné"
	}
	return fmt.Sprintf("%d ans", age)
}

func formatWeight(kg float64) string {
	if kg <= 0 {
		return "Non renseigné"
	}
	return fmt.Sprintf("%.0f kg", kg)
}

func formatHeight(cm float64) string {
	if cm <= 0 {
		return "Non renseigné"
	}
	return fmt.Sprintf("%.0f cm", cm)
}

func formatBMI(bmi float64) string {
	if bmi <= 0 {
		return "Non calculé"
	}
	return fmt.Sprintf("%.1f kg/m²", bmi)
}

func formatGender(g string) string {
	switch strings.ToUpper(strings.TrimSpace(g)) {
	case "M", "MASCULIN", "HOMME", "MALE":
		return "Masculin"
	case "F", "FÉMININ", "FEMININ", "FEMME", "FEMALE":
		return "Féminin"
	case "":
		return "Non renseigné"
	default:
		return g
	}
}

func formatAllergies(allergies []string) string {
	cleaned := make([]string, 0, len(allergies))
	for _, a := range allergies {
		if strings.TrimSpace(a) != "" {
			cleaned = append(cleaned, strings.TrimSpace(a))
		}
	}
	if len(cleaned) == 0 {
		return "Aucune allergie connue"
	}
	return strings.Join(cleaned, ", ")
}
