package consultation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/teleconsult/teleconsult/internal/docgen"
	"github.com/teleconsult/teleconsult/internal/domain/doctor"
	"github.com/teleconsult/teleconsult/internal/domain/patient"
	"github.com/teleconsult/teleconsult/internal/platform/ai"
	"github.com/teleconsult/teleconsult/internal/platform/aicache"
	"github.com/teleconsult/teleconsult/internal/platform/db"
)

// Service drives the consultation workflow: intake, AI question generation,
// transcript capture, AI diagnosis, document generation, finalization. The
// AI provider and cache are optional; without a provider the diagnosis and
// question steps fail cleanly and document generation takes the fallback path.
type Service struct {
	repo     Repository
	patients patient.Repository
	doctors  doctor.Repository
	provider ai.Provider
	cache    *aicache.Cache
	gen      *docgen.Generator
	tx       db.TxRunner
}

func NewService(repo Repository, patients patient.Repository, doctors doctor.Repository,
	provider ai.Provider, cache *aicache.Cache, gen *docgen.Generator, tx db.TxRunner) *Service {
	return &Service{
		repo:     repo,
		patients: patients,
		doctors:  doctors,
		provider: provider,
		cache:    cache,
		gen:      gen,
		tx:       tx,
	}
}

// inTx runs fn transactionally when a runner is configured, directly
// otherwise.
func (s *Service) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.tx == nil {
		return fn(ctx)
	}
	return s.tx(ctx, fn)
}

// Create validates both references and inserts the consultation in one
// transaction, so a patient or doctor deleted concurrently cannot leave a
// dangling record.
func (s *Service) Create(ctx context.Context, patientID, doctorID uuid.UUID, chiefComplaint string) (*Consultation, error) {
	if chiefComplaint == "" {
		return nil, fmt.Errorf("chief_complaint is required")
	}

	c := &Consultation{
		PatientID:      patientID,
		DoctorID:       doctorID,
		Step:           StepIntake,
		ChiefComplaint: chiefComplaint,
	}
	err := s.inTx(ctx, func(ctx context.Context) error {
		if _, err := s.patients.GetByID(ctx, patientID); err != nil {
			return fmt.Errorf("patient not found")
		}
		if _, err := s.doctors.GetByID(ctx, doctorID); err != nil {
			return fmt.Errorf("doctor not found")
		}
		return s.repo.Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Consultation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Consultation, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

// GenerateQuestions asks the AI for targeted diagnostic questions based on
// the intake summary. Cached by summary hash so retries are free.
func (s *Service) GenerateQuestions(ctx context.Context, id uuid.UUID) (*Consultation, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.advance(StepQuestions); err != nil {
		return nil, err
	}
	if s.provider == nil {
		return nil, fmt.Errorf("ai provider not configured")
	}

	summary, err := s.patientSummary(ctx, c)
	if err != nil {
		return nil, err
	}

	key := aicache.Key("questions", summary)
	if data, ok := s.cache.Get(ctx, key); ok {
		var cached []ai.Question
		if json.Unmarshal(data, &cached) == nil && len(cached) > 0 {
			c.Questions = cached
			return c, s.repo.Update(ctx, c)
		}
	}

	questions, err := s.provider.GenerateQuestions(ctx, summary)
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}
	c.Questions = questions

	if data, err := json.Marshal(questions); err == nil {
		s.cache.Set(ctx, key, data)
	}
	return c, s.repo.Update(ctx, c)
}

// AttachTranscript records the consultation exchange. The questions step is
// optional so intake may move straight to transcript.
func (s *Service) AttachTranscript(ctx context.Context, id uuid.UUID, transcript string) (*Consultation, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, fmt.Errorf("transcript is required")
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.advance(StepTranscript); err != nil {
		return nil, err
	}
	c.Transcript = transcript
	return c, s.repo.Update(ctx, c)
}

// RunDiagnosis asks the AI for a structured diagnosis. An AI failure does not
// block the workflow: the consultation still advances, with FallbackUsed set
// so document generation knows to use generic templates.
func (s *Service) RunDiagnosis(ctx context.Context, id uuid.UUID) (*Consultation, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.advance(StepDiagnosis); err != nil {
		return nil, err
	}

	summary, err := s.patientSummary(ctx, c)
	if err != nil {
		return nil, err
	}

	if s.provider == nil {
		c.FallbackUsed = true
		return c, s.repo.Update(ctx, c)
	}

	key := aicache.Key("diagnosis", summary+"\n---\n"+c.Transcript)
	if data, ok := s.cache.Get(ctx, key); ok {
		var cached map[string]interface{}
		if json.Unmarshal(data, &cached) == nil && len(cached) > 0 {
			c.DiagnosisRaw = cached
			return c, s.repo.Update(ctx, c)
		}
	}

	raw, err := s.provider.GenerateDiagnosis(ctx, summary, c.Transcript)
	if err != nil {
		log.Warn().Err(err).Str("consultation_id", id.String()).
			Msg("diagnosis generation failed, marking fallback")
		c.FallbackUsed = true
		return c, s.repo.Update(ctx, c)
	}
	c.DiagnosisRaw = raw

	if data, err := json.Marshal(raw); err == nil {
		s.cache.Set(ctx, key, data)
	}
	return c, s.repo.Update(ctx, c)
}

// GenerateDocuments produces the four-document set from the stored diagnosis.
// An unusable diagnosis payload degrades to the fallback set rather than
// failing; only a missing patient name aborts.
func (s *Service) GenerateDocuments(ctx context.Context, id uuid.UUID) (*Consultation, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.advance(StepDocuments); err != nil {
		return nil, err
	}

	p, err := s.patients.GetByID(ctx, c.PatientID)
	if err != nil {
		return nil, fmt.Errorf("patient not found")
	}
	d, err := s.doctors.GetByID(ctx, c.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("doctor not found")
	}

	docP := toDocPatient(p)
	docD := toDocDoctor(d)
	date := time.Now()

	diag := docgen.ParseDiagnosis(c.DiagnosisRaw)
	if c.FallbackUsed || !diag.UsableForGeneration() {
		if !c.FallbackUsed {
			log.Warn().Str("consultation_id", id.String()).
				Msg("diagnosis payload unusable, generating fallback documents")
		}
		c.Documents = s.gen.GenerateFallback(docP, docD, date)
		c.FallbackUsed = true
		return c, s.repo.Update(ctx, c)
	}

	set, err := s.gen.Generate(docP, diag, docD, date)
	if err != nil {
		return nil, err
	}
	c.Documents = set
	return c, s.repo.Update(ctx, c)
}

// UpdateDocuments stores doctor edits to the generated set. Allowed only
// while the consultation sits at the documents step.
func (s *Service) UpdateDocuments(ctx context.Context, id uuid.UUID, set *docgen.DocumentSet) (*Consultation, error) {
	if set == nil {
		return nil, fmt.Errorf("documents payload is required")
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Step != StepDocuments {
		return nil, fmt.Errorf("documents can only be edited at the documents step, current step is %s", c.Step)
	}
	set.Warnings = docgen.Validate(set)
	c.Documents = set
	return c, s.repo.Update(ctx, c)
}

// Finalize locks the consultation. Requires a generated document set.
func (s *Service) Finalize(ctx context.Context, id uuid.UUID) (*Consultation, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Documents == nil {
		return nil, fmt.Errorf("cannot finalize without generated documents")
	}
	if err := c.advance(StepFinalized); err != nil {
		return nil, err
	}
	now := time.Now()
	c.FinalizedAt = &now
	return c, s.repo.Update(ctx, c)
}

// patientSummary builds the French intake summary fed to AI prompts.
func (s *Service) patientSummary(ctx context.Context, c *Consultation) (string, error) {
	p, err := s.patients.GetByID(ctx, c.PatientID)
	if err != nil {
		return "", fmt.Errorf("patient not found")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Patient: %s %s, %d ans, sexe %s\n", p.FirstName, p.LastName, p.Age, p.Gender)
	if p.WeightKg > 0 {
		fmt.Fprintf(&b, "Poids: %.1f kg\n", p.WeightKg)
	}
	if p.HeightCm > 0 {
		fmt.Fprintf(&b, "Taille: %.0f cm\n", p.HeightCm)
	}
	if len(p.Allergies) > 0 {
		fmt.Fprintf(&b, "Allergies: %s\n", strings.Join(p.Allergies, ", "))
	}
	if len(p.MedicalHistory) > 0 {
		fmt.Fprintf(&b, "Antécédents: %s\n", strings.Join(p.MedicalHistory, ", "))
	}
	if len(p.Medications) > 0 {
		fmt.Fprintf(&b, "Traitements en cours: %s\n", strings.Join(p.Medications, ", "))
	}
	fmt.Fprintf(&b, "Motif de consultation: %s", c.ChiefComplaint)
	return b.String(), nil
}

func toDocPatient(p *patient.Patient) docgen.Patient {
	return docgen.Patient{
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Age:            p.Age,
		Gender:         p.Gender,
		WeightKg:       p.WeightKg,
		HeightCm:       p.HeightCm,
		Allergies:      p.Allergies,
		MedicalHistory: p.MedicalHistory,
		Phone:          deref(p.Phone),
		Email:          deref(p.Email),
		Address:        deref(p.Address),
	}
}

func toDocDoctor(d *doctor.Doctor) docgen.Doctor {
	return docgen.Doctor{
		FullName:       d.FullName,
		Qualifications: d.Qualifications,
		Specialty:      d.Specialty,
		RegistrationNo: d.RegistrationNo,
		Phone:          deref(d.Phone),
		Email:          deref(d.Email),
		Address:        deref(d.Address),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
