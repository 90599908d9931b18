package docgen

import "testing"

func TestMedicationClass(t *testing.T) {
	cases := []struct {
		term string
		want string
	}{
		{"Amoxicilline 500mg", "Antibiotique"},
		{"Paracétamol", "Antalgique/Antipyrétique"},
		{"paracetamol", "Antalgique/Antipyrétique"},
		{"Oméprazole 20mg", "Inhibiteur de la pompe à protons"},
		{"Metformine", "Antidiabétique oral"},
		{"Produit inconnu", "Médicament"},
	}
	for _, tc := range cases {
		if got := MedicationClass(tc.term); got != tc.want {
			t.Errorf("MedicationClass(%q) = %q, want %q", tc.term, got, tc.want)
		}
	}
}

func TestMauritianBrand(t *testing.T) {
	cases := []struct {
		term string
		want string
	}{
		{"Paracétamol 1g", "Panadol"},
		{"Ibuprofène", "Brufen"},
		{"Amoxicilline", "Amoxil"},
		{"Molécule inconnue", "Générique disponible"},
	}
	for _, tc := range cases {
		if got := MauritianBrand(tc.term); got != tc.want {
			t.Errorf("MauritianBrand(%q) = %q, want %q", tc.term, got, tc.want)
		}
	}
}

func TestLabUrgency(t *testing.T) {
	cases := []struct {
		term string
		want string
	}{
		{"Troponine ultra-sensible", "Urgent"},
		{"CRP (Protéine C-Réactive)", "Semi-urgent"},
		{"NFS", "Semi-urgent"},
		{"Bilan lipidique", "Routine"},
	}
	for _, tc := range cases {
		if got := LabUrgency(tc.term); got != tc.want {
			t.Errorf("LabUrgency(%q) = %q, want %q", tc.term, got, tc.want)
		}
	}
}

func TestLabSample(t *testing.T) {
	sample, tube := LabSample("NFS")
	if sample != "Sang veineux" || tube != "EDTA (bouchon violet)" {
		t.Errorf("LabSample(NFS) = %q/%q", sample, tube)
	}
	sample, tube = LabSample("ECBU")
	if sample != "Urines" || tube != "Flacon stérile" {
		t.Errorf("LabSample(ECBU) = %q/%q", sample, tube)
	}
	sample, tube = LabSample("Exam inconnu")
	if sample != "Sang veineux" || tube != "Tube sec (bouchon rouge)" {
		t.Errorf("LabSample default = %q/%q", sample, tube)
	}
}

func TestImagingCategory(t *testing.T) {
	cases := []struct {
		term     string
		category string
	}{
		{"Scanner thoracique", "Tomodensitométrie"},
		{"IRM cérébrale", "IRM"},
		{"Échographie abdominale", "Échographie"},
		{"Radiographie du thorax", "Radiographie standard"},
		{"ECG de repos", "Électrocardiogramme"},
		{"Examen inconnu", "Imagerie médicale"},
	}
	for _, tc := range cases {
		if got, _ := ImagingCategory(tc.term); got != tc.category {
			t.Errorf("ImagingCategory(%q) = %q, want %q", tc.term, got, tc.category)
		}
	}
}

func TestImagingContrast(t *testing.T) {
	if got := ImagingContrast("Scanner avec injection"); got != "Avec injection de produit de contraste" {
		t.Errorf("expected contrast mention, got %q", got)
	}
	if got := ImagingContrast("Radiographie du thorax"); got != "Sans injection" {
		t.Errorf("expected no contrast, got %q", got)
	}
}

func TestLabFasting(t *testing.T) {
	if got := LabFasting("Glycémie à jeun"); got != "À jeun strict (8-12h)" {
		t.Errorf("LabFasting(glycémie à jeun) = %q", got)
	}
	if got := LabFasting("Bilan lipidique"); got != "À jeun (12h)" {
		t.Errorf("LabFasting(bilan lipidique) = %q", got)
	}
	if got := LabFasting("NFS"); got != "Non requis" {
		t.Errorf("LabFasting(NFS) = %q", got)
	}
}
