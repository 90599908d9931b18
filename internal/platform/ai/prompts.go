package ai

import (
	"fmt"
	"strings"
)

const questionsSystemPrompt = `You are a clinical assistant helping a doctor prepare a ` +
	`teleconsultation. Given a patient intake summary, propose targeted diagnostic ` +
	`questions in French. Respond with JSON only, no prose, in the form ` +
	`{"questions":[{"question":"...","rationale":"..."}]}.`

const diagnosisSystemPrompt = `You are a clinical assistant. Given a patient intake summary ` +
	`and the consultation transcript, produce a diagnostic assessment in French. ` +
	`Respond with JSON only, no prose, in the form {"diagnosis":{"primary":{"condition":"...",` +
	`"icd10":"...","confidence":0,"severity":"légère|modérée|sévère","rationale":"..."},` +
	`"differential":[{"condition":"...","probability":0,"rationale":"..."}]},` +
	`"suggestedExams":{"lab":["..."],"imaging":["..."]},` +
	`"treatmentPlan":{"medications":[{"name":"...","dosage":"...","frequency":"...","duration":"..."}]}}. ` +
	`This output assists a licensed physician and is not a medical decision.`

func buildQuestionsUserPrompt(patientSummary string) string {
	var b strings.Builder
	b.WriteString("Patient:\n")
	b.WriteString(patientSummary)
	b.WriteString("\n\nPropose 5 to 8 diagnostic questions.")
	return b.String()
}

func buildDiagnosisUserPrompt(patientSummary, transcript string) string {
	return fmt.Sprintf("Patient:\n%s\n\nTranscript de la consultation:\n%s", patientSummary, transcript)
}
