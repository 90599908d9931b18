package docgen

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrMissingPatientName is returned when the patient's first or last
	// name is absent. No document can be meaningfully labeled without it.
	ErrMissingPatientName = errors.New("patient first and last name are required")

	// ErrMissingDiagnosis is returned when no primary condition is present.
	ErrMissingDiagnosis = errors.New("primary diagnosis condition is required")
)

const (
	originAI       = "ai"
	originFallback = "fallback"
)

// Generator assembles document sets. It holds only static practice identity;
// every Generate call is an independent pure transform.
type Generator struct {
	clinic ClinicInfo
	now    func() time.Time
}

// NewGenerator creates a Generator for the given practice.
func NewGenerator(clinic ClinicInfo) *Generator {
	return &Generator{
		clinic: clinic,
		now:    time.Now,
	}
}

// Generate assembles the four-document set. It returns an error only when
// the required root inputs are missing (patient name, primary condition);
// every other absence degrades to a placeholder default.
func (g *Generator) Generate(p Patient, d Diagnosis, doc Doctor, date time.Time) (*DocumentSet, error) {
	if strings.TrimSpace(p.FirstName) == "" || strings.TrimSpace(p.LastName) == "" {
		return nil, ErrMissingPatientName
	}
	if !d.UsableForGeneration() {
		return nil, ErrMissingDiagnosis
	}

	set := &DocumentSet{
		Report:       g.assembleReport(p, d, doc, date, originAI),
		Biology:      g.assembleBiology(p, d, doc, date, originAI),
		Paraclinical: g.assembleParaclinical(p, d, doc, date, originAI),
		Medication:   g.assembleMedication(p, d, doc, date, originAI),
	}
	set.Warnings = Validate(set)
	return set, nil
}

func (g *Generator) header(title, prefix string, doc Doctor, date time.Time) Header {
	return Header{
		DocumentNumber:       documentNumber(prefix, date),
		Title:                title,
		DoctorName:           StringOf(doc.FullName).Or("Dr. [Nom à compléter]"),
		DoctorQualifications: StringOf(doc.Qualifications).Or("Docteur en médecine"),
		DoctorSpecialty:      StringOf(doc.Specialty).Or("Médecine générale"),
		RegistrationNo:       StringOf(doc.RegistrationNo).Or("N° MCM à compléter"),
		ClinicName:           StringOf(g.clinic.Name).Or("Cabinet de Télémédecine"),
		ClinicAddress:        StringOf(g.clinic.Address).Or("Adresse à compléter"),
		ClinicPhone:          StringOf(g.clinic.Phone).Or("Téléphone à compléter"),
		Date:                 date.Format("02/01/2006"),
	}
}

func (g *Generator) patientBlock(p Patient) PatientBlock {
	return PatientBlock{
		FullName:  StringOf(p.FullName()).Or("Patient"),
		Age:       formatAge(p.Age),
		Gender:    formatGender(p.Gender),
		Weight:    formatWeight(p.WeightKg),
		Height:    formatHeight(p.HeightCm),
		BMI:       formatBMI(p.BMI()),
		Allergies: formatAllergies(p.Allergies),
	}
}

func (g *Generator) metadata(origin, note string) Metadata {
	return Metadata{
		GeneratedAt: g.now(),
		Origin:      origin,
		Note:        note,
	}
}

// documentNumber builds an auto-generated number such as "ORD-20260831-4F2A91C3".
func documentNumber(prefix string, date time.Time) string {
	short := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return prefix + "-" + date.Format("20060102") + "-" + short
}
