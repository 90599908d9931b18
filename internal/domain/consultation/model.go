package consultation

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/teleconsult/teleconsult/internal/docgen"
	"github.com/teleconsult/teleconsult/internal/platform/ai"
)

// Workflow steps. A consultation moves forward only; the one exception is
// documents, which may be regenerated and edited in place until finalized.
const (
	StepIntake     = "intake"
	StepQuestions  = "questions"
	StepTranscript = "transcript"
	StepDiagnosis  = "diagnosis"
	StepDocuments  = "documents"
	StepFinalized  = "finalized"
)

var stepTransitions = map[string][]string{
	StepIntake:     {StepQuestions, StepTranscript},
	StepQuestions:  {StepTranscript},
	StepTranscript: {StepDiagnosis},
	StepDiagnosis:  {StepDocuments},
	StepDocuments:  {StepDocuments, StepFinalized},
	StepFinalized:  {},
}

// CanTransition reports whether moving from one step to another is allowed.
func CanTransition(from, to string) bool {
	for _, next := range stepTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Consultation is one telemedicine encounter. Questions, DiagnosisRaw and
// Documents are stored as JSONB: the diagnosis payload in particular is kept
// verbatim so regeneration always works from the original AI output.
type Consultation struct {
	ID             uuid.UUID              `db:"id" json:"id"`
	PatientID      uuid.UUID              `db:"patient_id" json:"patient_id"`
	DoctorID       uuid.UUID              `db:"doctor_id" json:"doctor_id"`
	Step           string                 `db:"step" json:"step"`
	ChiefComplaint string                 `db:"chief_complaint" json:"chief_complaint"`
	Questions      []ai.Question          `db:"questions" json:"questions,omitempty"`
	Transcript     string                 `db:"transcript" json:"transcript,omitempty"`
	DiagnosisRaw   map[string]interface{} `db:"diagnosis_raw" json:"diagnosis_raw,omitempty"`
	Documents      *docgen.DocumentSet    `db:"documents" json:"documents,omitempty"`
	FallbackUsed   bool                   `db:"fallback_used" json:"fallback_used"`
	FinalizedAt    *time.Time             `db:"finalized_at" json:"finalized_at,omitempty"`
	CreatedAt      time.Time              `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time              `db:"updated_at" json:"updated_at"`
}

func (c *Consultation) advance(to string) error {
	if !CanTransition(c.Step, to) {
		return fmt.Errorf("cannot move consultation from %s to %s", c.Step, to)
	}
	c.Step = to
	return nil
}
