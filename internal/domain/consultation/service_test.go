package consultation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/teleconsult/teleconsult/internal/docgen"
	"github.com/teleconsult/teleconsult/internal/domain/doctor"
	"github.com/teleconsult/teleconsult/internal/domain/patient"
	"github.com/teleconsult/teleconsult/internal/platform/ai"
	"github.com/teleconsult/teleconsult/internal/platform/db"
)

type mockRepo struct {
	consultations map[uuid.UUID]*Consultation
}

func newMockRepo() *mockRepo {
	return &mockRepo{consultations: make(map[uuid.UUID]*Consultation)}
}

func (m *mockRepo) Create(ctx context.Context, c *Consultation) error {
	c.ID = uuid.New()
	m.consultations[c.ID] = c
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Consultation, error) {
	c, ok := m.consultations[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	copied := *c
	return &copied, nil
}

func (m *mockRepo) Update(ctx context.Context, c *Consultation) error {
	if _, ok := m.consultations[c.ID]; !ok {
		return fmt.Errorf("not found")
	}
	copied := *c
	m.consultations[c.ID] = &copied
	return nil
}

func (m *mockRepo) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Consultation, int, error) {
	var out []*Consultation
	for _, c := range m.consultations {
		if c.PatientID == patientID {
			out = append(out, c)
		}
	}
	return out, len(out), nil
}

type mockPatientRepo struct {
	patients map[uuid.UUID]*patient.Patient
}

func (m *mockPatientRepo) Create(ctx context.Context, p *patient.Patient) error { return nil }
func (m *mockPatientRepo) Update(ctx context.Context, p *patient.Patient) error { return nil }
func (m *mockPatientRepo) Delete(ctx context.Context, id uuid.UUID) error       { return nil }
func (m *mockPatientRepo) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*patient.Patient, int, error) {
	return nil, 0, nil
}
func (m *mockPatientRepo) GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return p, nil
}

type mockDoctorRepo struct {
	doctors map[uuid.UUID]*doctor.Doctor
}

func (m *mockDoctorRepo) Create(ctx context.Context, d *doctor.Doctor) error { return nil }
func (m *mockDoctorRepo) Update(ctx context.Context, d *doctor.Doctor) error { return nil }
func (m *mockDoctorRepo) List(ctx context.Context, limit, offset int) ([]*doctor.Doctor, int, error) {
	return nil, 0, nil
}
func (m *mockDoctorRepo) GetByID(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	d, ok := m.doctors[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return d, nil
}

type stubProvider struct {
	questions []ai.Question
	diagnosis map[string]interface{}
	err       error
}

func (s *stubProvider) GenerateQuestions(ctx context.Context, summary string) ([]ai.Question, error) {
	return s.questions, s.err
}

func (s *stubProvider) GenerateDiagnosis(ctx context.Context, summary, transcript string) (map[string]interface{}, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.diagnosis, nil
}

type fixture struct {
	svc       *Service
	patientID uuid.UUID
	doctorID  uuid.UUID
}

func newFixture(provider ai.Provider) *fixture {
	return newFixtureTx(provider, nil)
}

func newFixtureTx(provider ai.Provider, tx db.TxRunner) *fixture {
	patientID := uuid.New()
	doctorID := uuid.New()

	patients := &mockPatientRepo{patients: map[uuid.UUID]*patient.Patient{
		patientID: {
			ID: patientID, FirstName: "Jean", LastName: "Dupont",
			Age: 45, Gender: "M", WeightKg: 80, HeightCm: 175,
		},
	}}
	doctors := &mockDoctorRepo{doctors: map[uuid.UUID]*doctor.Doctor{
		doctorID: {
			ID: doctorID, FullName: "Dr. Marie Laurent",
			Qualifications: "MBBS", Specialty: "Médecine générale",
			RegistrationNo: "MCM-12345",
		},
	}}

	gen := docgen.NewGenerator(docgen.ClinicInfo{Name: "Cabinet Test"})
	svc := NewService(newMockRepo(), patients, doctors, provider, nil, gen, tx)
	return &fixture{svc: svc, patientID: patientID, doctorID: doctorID}
}

func usableDiagnosis() map[string]interface{} {
	return map[string]interface{}{
		"diagnosis": map[string]interface{}{
			"primary": map[string]interface{}{
				"condition":  "Hypertension artérielle",
				"confidence": float64(85),
			},
		},
	}
}

func TestCreateValidatesReferences(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, f.patientID, f.doctorID, ""); err == nil {
		t.Error("expected error without chief complaint")
	}
	if _, err := f.svc.Create(ctx, uuid.New(), f.doctorID, "Céphalées"); err == nil {
		t.Error("expected error for unknown patient")
	}
	if _, err := f.svc.Create(ctx, f.patientID, uuid.New(), "Céphalées"); err == nil {
		t.Error("expected error for unknown doctor")
	}

	c, err := f.svc.Create(ctx, f.patientID, f.doctorID, "Céphalées")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.Step != StepIntake {
		t.Errorf("step = %q", c.Step)
	}
}

func TestCreateRunsInsideTransactionRunner(t *testing.T) {
	var calls int
	runner := db.TxRunner(func(ctx context.Context, fn func(context.Context) error) error {
		calls++
		return fn(ctx)
	})
	f := newFixtureTx(nil, runner)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, f.patientID, f.doctorID, "Céphalées"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if calls != 1 {
		t.Errorf("transaction runner called %d times, want 1", calls)
	}

	// Reference validation happens inside the transaction and aborts it.
	if _, err := f.svc.Create(ctx, uuid.New(), f.doctorID, "Céphalées"); err == nil {
		t.Error("expected error for unknown patient")
	}
	if calls != 2 {
		t.Errorf("transaction runner called %d times, want 2", calls)
	}
}

func TestFullWorkflowWithAI(t *testing.T) {
	provider := &stubProvider{
		questions: []ai.Question{{Question: "Depuis quand ?"}},
		diagnosis: usableDiagnosis(),
	}
	f := newFixture(provider)
	ctx := context.Background()

	c, err := f.svc.Create(ctx, f.patientID, f.doctorID, "Céphalées et vertiges")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	c, err = f.svc.GenerateQuestions(ctx, c.ID)
	if err != nil {
		t.Fatalf("GenerateQuestions: %v", err)
	}
	if c.Step != StepQuestions || len(c.Questions) != 1 {
		t.Errorf("after questions: step=%q questions=%d", c.Step, len(c.Questions))
	}

	c, err = f.svc.AttachTranscript(ctx, c.ID, "Médecin: depuis quand ? Patient: 3 jours.")
	if err != nil {
		t.Fatalf("AttachTranscript: %v", err)
	}
	if c.Step != StepTranscript {
		t.Errorf("after transcript: step=%q", c.Step)
	}

	c, err = f.svc.RunDiagnosis(ctx, c.ID)
	if err != nil {
		t.Fatalf("RunDiagnosis: %v", err)
	}
	if c.Step != StepDiagnosis || c.DiagnosisRaw == nil || c.FallbackUsed {
		t.Errorf("after diagnosis: step=%q raw=%v fallback=%v", c.Step, c.DiagnosisRaw, c.FallbackUsed)
	}

	c, err = f.svc.GenerateDocuments(ctx, c.ID)
	if err != nil {
		t.Fatalf("GenerateDocuments: %v", err)
	}
	if c.Step != StepDocuments || c.Documents == nil {
		t.Fatalf("after documents: step=%q documents=%v", c.Step, c.Documents)
	}
	if c.Documents.FallbackUsed {
		t.Error("fallback used despite usable diagnosis")
	}
	if !strings.Contains(c.Documents.Report.Sections.DiagnosticSynthesis, "Hypertension artérielle") {
		t.Errorf("diagnosis missing from report: %q", c.Documents.Report.Sections.DiagnosticSynthesis)
	}

	c, err = f.svc.Finalize(ctx, c.ID)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if c.Step != StepFinalized || c.FinalizedAt == nil {
		t.Errorf("after finalize: step=%q finalized_at=%v", c.Step, c.FinalizedAt)
	}
}

func TestQuestionsStepIsOptional(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()

	c, _ := f.svc.Create(ctx, f.patientID, f.doctorID, "Toux")
	if _, err := f.svc.AttachTranscript(ctx, c.ID, "échange"); err != nil {
		t.Errorf("intake to transcript should be allowed: %v", err)
	}
}

func TestWorkflowRejectsSkippedSteps(t *testing.T) {
	f := newFixture(&stubProvider{diagnosis: usableDiagnosis()})
	ctx := context.Background()

	c, _ := f.svc.Create(ctx, f.patientID, f.doctorID, "Toux")

	if _, err := f.svc.RunDiagnosis(ctx, c.ID); err == nil {
		t.Error("diagnosis without transcript should be rejected")
	}
	if _, err := f.svc.GenerateDocuments(ctx, c.ID); err == nil {
		t.Error("documents without diagnosis should be rejected")
	}
	if _, err := f.svc.Finalize(ctx, c.ID); err == nil {
		t.Error("finalize without documents should be rejected")
	}
}

func TestDiagnosisFailureMarksFallback(t *testing.T) {
	provider := &stubProvider{err: errors.New("upstream down")}
	f := newFixture(provider)
	ctx := context.Background()

	c, _ := f.svc.Create(ctx, f.patientID, f.doctorID, "Fièvre")
	c, _ = f.svc.AttachTranscript(ctx, c.ID, "échange")

	c, err := f.svc.RunDiagnosis(ctx, c.ID)
	if err != nil {
		t.Fatalf("RunDiagnosis should not fail on upstream error: %v", err)
	}
	if !c.FallbackUsed {
		t.Error("expected fallback flag after upstream failure")
	}

	c, err = f.svc.GenerateDocuments(ctx, c.ID)
	if err != nil {
		t.Fatalf("GenerateDocuments: %v", err)
	}
	if !c.Documents.FallbackUsed {
		t.Error("expected fallback document set")
	}
	if c.Documents.Report.Metadata.Origin != "fallback" {
		t.Errorf("origin = %q", c.Documents.Report.Metadata.Origin)
	}
}

func TestUnusableDiagnosisFallsBack(t *testing.T) {
	provider := &stubProvider{diagnosis: map[string]interface{}{"unexpected": "shape"}}
	f := newFixture(provider)
	ctx := context.Background()

	c, _ := f.svc.Create(ctx, f.patientID, f.doctorID, "Fièvre")
	c, _ = f.svc.AttachTranscript(ctx, c.ID, "échange")
	c, _ = f.svc.RunDiagnosis(ctx, c.ID)

	c, err := f.svc.GenerateDocuments(ctx, c.ID)
	if err != nil {
		t.Fatalf("GenerateDocuments: %v", err)
	}
	if !c.FallbackUsed || !c.Documents.FallbackUsed {
		t.Error("expected fallback for unusable diagnosis payload")
	}
}

func TestDocumentsCanBeRegeneratedAndEdited(t *testing.T) {
	f := newFixture(&stubProvider{diagnosis: usableDiagnosis()})
	ctx := context.Background()

	c, _ := f.svc.Create(ctx, f.patientID, f.doctorID, "Céphalées")
	c, _ = f.svc.AttachTranscript(ctx, c.ID, "échange")
	c, _ = f.svc.RunDiagnosis(ctx, c.ID)
	c, _ = f.svc.GenerateDocuments(ctx, c.ID)

	// Regeneration stays at the documents step.
	c, err := f.svc.GenerateDocuments(ctx, c.ID)
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if c.Step != StepDocuments {
		t.Errorf("step after regenerate = %q", c.Step)
	}

	edited := *c.Documents
	edited.Medication.Items = nil
	c, err = f.svc.UpdateDocuments(ctx, c.ID, &edited)
	if err != nil {
		t.Fatalf("UpdateDocuments: %v", err)
	}
	found := false
	for _, w := range c.Documents.Warnings {
		if strings.Contains(w, "aucune ligne de prescription") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected empty-prescription warning after edit, got %v", c.Documents.Warnings)
	}

	c, _ = f.svc.Finalize(ctx, c.ID)
	if _, err := f.svc.UpdateDocuments(ctx, c.ID, &edited); err == nil {
		t.Error("edits after finalization should be rejected")
	}
}

func TestTransitionTable(t *testing.T) {
	allowed := [][2]string{
		{StepIntake, StepQuestions},
		{StepIntake, StepTranscript},
		{StepQuestions, StepTranscript},
		{StepTranscript, StepDiagnosis},
		{StepDiagnosis, StepDocuments},
		{StepDocuments, StepDocuments},
		{StepDocuments, StepFinalized},
	}
	for _, pair := range allowed {
		if !CanTransition(pair[0], pair[1]) {
			t.Errorf("expected %s -> %s to be allowed", pair[0], pair[1])
		}
	}

	denied := [][2]string{
		{StepIntake, StepDiagnosis},
		{StepTranscript, StepIntake},
		{StepFinalized, StepDocuments},
		{StepQuestions, StepDocuments},
	}
	for _, pair := range denied {
		if CanTransition(pair[0], pair[1]) {
			t.Errorf("expected %s -> %s to be denied", pair[0], pair[1])
		}
	}
}
