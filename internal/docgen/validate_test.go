package docgen

import (
	"strings"
	"testing"
)

func TestValidateCompleteSetHasNoWarnings(t *testing.T) {
	g := NewGenerator(testClinic)
	set, err := g.Generate(testPatient(), ParseDiagnosis(hypertensionPayload()), testDoctor, testDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if warnings := Validate(set); len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestValidateCollectsAllGaps(t *testing.T) {
	set := &DocumentSet{}
	warnings := Validate(set)

	// Four documents, four checks each, plus the two empty-list checks.
	if len(warnings) != 18 {
		t.Errorf("expected 18 warnings for a zero set, got %d: %v", len(warnings), warnings)
	}

	joined := strings.Join(warnings, "\n")
	for _, want := range []string{
		"compte-rendu: nom du médecin absent",
		"ordonnance biologie: aucun examen prescrit",
		"ordonnance médicaments: aucune ligne de prescription",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected warning containing %q", want)
		}
	}
}

func TestValidateNeverRejects(t *testing.T) {
	set := &DocumentSet{}
	// Validate reports gaps but the set itself stays usable.
	if warnings := Validate(set); warnings == nil {
		t.Error("expected warnings for an empty set")
	}
}

func TestMaybeOr(t *testing.T) {
	if got := StringOf("  valeur  ").Or("défaut"); got != "valeur" {
		t.Errorf("present value = %q", got)
	}
	if got := StringOf("   ").Or("défaut"); got != "défaut" {
		t.Errorf("blank default = %q", got)
	}
	if StringOf("x").Present() != true || StringOf("").Present() != false {
		t.Error("Present misreports")
	}
}
