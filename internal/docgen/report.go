package docgen

import "time"

func (g *Generator) assembleReport(p Patient, d Diagnosis, doc Doctor, date time.Time, origin string) ConsultationReport {
	return ConsultationReport{
		Header:  g.header("Compte-Rendu de Téléconsultation", "CR", doc, date),
		Patient: g.patientBlock(p),
		Sections: ReportSections{
			Anamnesis:           BuildAnamnesis(p, d),
			PhysicalExam:        BuildPhysicalExam(p, d),
			DiagnosticSynthesis: BuildDiagnosticSynthesis(d),
			TherapeuticPlan:     BuildTherapeuticPlan(d),
		},
		Metadata: g.metadata(origin, ""),
	}
}
